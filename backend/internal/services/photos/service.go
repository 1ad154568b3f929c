package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
)

const (
	queueTable      = "photo_moderation_queue"
	queueLimit      = 50
	defaultTemplate = "{user_id}/{photo_id}"

	FilterPending = "pending"
	FilterAll     = "all"
)

var ErrValidation = errors.New("validation error")

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Transitioner interface {
	Apply(ctx context.Context, t transition.Transition, req transition.Request) error
}

type Config struct {
	KeyTemplate string
	PresignTTL  time.Duration
}

type Service struct {
	gw          gateway.Gateway
	transitions Transitioner
	signer      URLSigner
	cfg         Config
	logger      *zap.Logger
}

func NewService(gw gateway.Gateway, transitions Transitioner, signer URLSigner, cfg Config, logger *zap.Logger) *Service {
	if strings.TrimSpace(cfg.KeyTemplate) == "" {
		cfg.KeyTemplate = defaultTemplate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gw:          gw,
		transitions: transitions,
		signer:      signer,
		cfg:         cfg,
		logger:      logger,
	}
}

// List returns the newest queue entries, optionally only pending ones.
func (s *Service) List(ctx context.Context, filter string) ([]model.PhotoModerationQueueEntry, error) {
	if s.gw == nil {
		return nil, fmt.Errorf("photos gateway is nil")
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterPending
	}
	q := gateway.From(queueTable).Select("*").OrderBy("submitted_at", false).WithLimit(queueLimit)
	switch filter {
	case FilterPending:
		q = q.Eq("status", string(enums.PhotoStatusPending))
	case FilterAll:
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", ErrValidation, filter)
	}

	entries := make([]model.PhotoModerationQueueEntry, 0)
	if err := gateway.SelectInto(ctx, s.gw, q, &entries); err != nil {
		return nil, fmt.Errorf("list photo queue: %w", err)
	}
	for i := range entries {
		entries[i].Normalize()
		entries[i].PhotoURL = s.photoURL(ctx, entries[i])
	}
	return entries, nil
}

func (s *Service) Approve(ctx context.Context, id, actorID string) error {
	return s.apply(ctx, transition.PhotoApprove, transition.Request{ID: id, ActorID: actorID})
}

func (s *Service) Reject(ctx context.Context, id, reason, actorID string) error {
	return s.apply(ctx, transition.PhotoReject, transition.Request{ID: id, Reason: reason, ActorID: actorID})
}

func (s *Service) apply(ctx context.Context, t transition.Transition, req transition.Request) error {
	if s.transitions == nil {
		return fmt.Errorf("photo transitions are not configured")
	}
	return s.transitions.Apply(ctx, t, req)
}

// photoURL signs the object key for an entry. A signing failure leaves the
// URL empty so one bad object does not hide the whole queue.
func (s *Service) photoURL(ctx context.Context, entry model.PhotoModerationQueueEntry) string {
	if s.signer == nil || entry.UserID == "" || entry.PhotoID == "" {
		return ""
	}
	key := ObjectKey(s.cfg.KeyTemplate, entry.UserID, entry.PhotoID)
	url, err := s.signer.PresignGet(ctx, key, s.cfg.PresignTTL)
	if err != nil {
		s.logger.Warn("presign photo failed", zap.String("photo_id", entry.PhotoID), zap.Error(err))
		return ""
	}
	return url
}

func ObjectKey(template, userID, photoID string) string {
	if strings.TrimSpace(template) == "" {
		template = defaultTemplate
	}
	return strings.NewReplacer("{user_id}", userID, "{photo_id}", photoID).Replace(template)
}
