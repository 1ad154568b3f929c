package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const (
	table         = "moderation_actions"
	ResultSuccess = "success"
)

type clientIPContextKey string

const clientIPKey clientIPContextKey = "audit_client_ip"

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, strings.TrimSpace(ip))
}

func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

type Entry struct {
	AdminID         string
	ActionType      enums.ModerationActionType
	TargetContentID string
	Reason          string
	Notes           string
	Metadata        map[string]any
	Result          string
}

// Recorder writes moderation_actions rows. Writes are best effort: a failure
// is logged and never returned to the caller.
type Recorder struct {
	gw     gateway.Gateway
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewRecorder(gw gateway.Gateway, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		gw:     gw,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.gw == nil {
		return
	}

	adminID := strings.TrimSpace(entry.AdminID)
	if adminID == "" {
		adminID = gateway.ActorFromContext(ctx)
	}
	if _, err := uuid.Parse(adminID); err != nil {
		r.logger.Warn("skip audit row without admin id",
			zap.String("action_type", string(entry.ActionType)),
		)
		return
	}

	actionType := entry.ActionType
	if !actionType.Valid() {
		actionType = enums.ActionOther
	}
	result := strings.TrimSpace(entry.Result)
	if result == "" {
		result = ResultSuccess
	}
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	row := map[string]any{
		"id":                r.newID(),
		"created_at":        r.now().UTC(),
		"admin_id":          adminID,
		"action_type":       string(actionType),
		"target_content_id": nullable(entry.TargetContentID),
		"reason":            nullable(entry.Reason),
		"notes":             nullable(entry.Notes),
		"metadata":          metadata,
		"ip_address":        nullable(ClientIPFromContext(ctx)),
		"result":            result,
	}

	if err := r.gw.Insert(ctx, table, row); err != nil {
		r.logger.Warn("audit write failed",
			zap.String("action_type", string(actionType)),
			zap.String("admin_id", adminID),
			zap.Error(err),
		)
	}
}

func nullable(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}
