package transition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/pkg/validate"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/audit"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrReasonRequired       = errors.New("reason is required")
	ErrConfirmationRequired = errors.New("confirmation is required")
	ErrIllegalTransition    = errors.New("illegal status transition")
)

// Transition is one status move exposed by the console. Columns left empty
// are not written.
type Transition struct {
	Entity          string
	Action          string
	Table           string
	Status          string
	TimestampColumn string
	ReasonColumn    string
	ReasonRequired  bool
	ReviewerColumn  string
	RequireConfirm  bool
	AuditAction     enums.ModerationActionType
}

type Request struct {
	ID      string
	Reason  string
	Confirm bool
	ActorID string
}

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Invalidator is told about every successful write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	gw          gateway.Gateway
	audit       AuditRecorder
	invalidator Invalidator
	now         func() time.Time
}

func NewService(gw gateway.Gateway, recorder AuditRecorder) *Service {
	return &Service{
		gw:    gw,
		audit: recorder,
		now:   time.Now,
	}
}

func (s *Service) WithInvalidator(inv Invalidator) *Service {
	s.invalidator = inv
	return s
}

// Apply validates the request and issues exactly one update by id. Nothing
// reaches the gateway when validation fails.
func (s *Service) Apply(ctx context.Context, t Transition, req Request) error {
	if t.Table == "" || t.Status == "" {
		return ErrIllegalTransition
	}
	id := strings.TrimSpace(req.ID)
	if !validate.Required(id) {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	reason := strings.TrimSpace(req.Reason)
	if t.ReasonRequired && reason == "" {
		return ErrReasonRequired
	}
	if t.RequireConfirm && !req.Confirm {
		return ErrConfirmationRequired
	}
	if s.gw == nil {
		return fmt.Errorf("transition gateway is nil")
	}

	patch := map[string]any{"status": t.Status}
	if t.TimestampColumn != "" {
		patch[t.TimestampColumn] = s.now().UTC()
	}
	if t.ReasonColumn != "" {
		if reason == "" {
			patch[t.ReasonColumn] = nil
		} else {
			patch[t.ReasonColumn] = reason
		}
	}
	if t.ReviewerColumn != "" {
		actor := strings.TrimSpace(req.ActorID)
		if actor == "" {
			actor = gateway.ActorFromContext(ctx)
		}
		if actor != "" {
			patch[t.ReviewerColumn] = actor
		}
	}

	if err := s.gw.Update(ctx, t.Table, id, patch); err != nil {
		return fmt.Errorf("%s %s %s: %w", t.Action, t.Entity, id, err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	if s.audit != nil {
		s.audit.Record(ctx, audit.Entry{
			AdminID:         req.ActorID,
			ActionType:      t.AuditAction,
			TargetContentID: id,
			Reason:          reason,
			Metadata: map[string]any{
				"table":  t.Table,
				"status": t.Status,
			},
			Result: audit.ResultSuccess,
		})
	}
	return nil
}
