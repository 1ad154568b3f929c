package compliance

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
)

const listLimit = 100

var profileColumns = []string{"display_name", "email"}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Transitioner interface {
	Apply(ctx context.Context, t transition.Transition, req transition.Request) error
}

type Service struct {
	gw          gateway.Gateway
	transitions Transitioner
	signer      URLSigner
	presignTTL  time.Duration
	logger      *zap.Logger
}

func NewService(gw gateway.Gateway, transitions Transitioner, signer URLSigner, presignTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gw:          gw,
		transitions: transitions,
		signer:      signer,
		presignTTL:  presignTTL,
		logger:      logger,
	}
}

func (s *Service) ListAgeVerifications(ctx context.Context) ([]model.AgeVerificationRequest, error) {
	q := gateway.From("age_verification_requests").
		Select("*").
		Embed(gateway.Embed{Table: "profiles", Hint: "age_verification_requests_user_id_fkey", LocalColumn: "user_id", Columns: profileColumns}).
		OrderBy("submitted_at", false).
		WithLimit(listLimit)

	rows := make([]model.AgeVerificationRequest, 0)
	if err := s.selectInto(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list age verifications: %w", err)
	}
	for i := range rows {
		rows[i].Normalize()
		rows[i].DocumentLink = s.documentLink(ctx, rows[i].DocumentURL)
	}
	return rows, nil
}

func (s *Service) ListGdprRequests(ctx context.Context) ([]model.GdprRequest, error) {
	q := gateway.From("gdpr_requests").
		Select("*").
		Embed(gateway.Embed{Table: "profiles", Hint: "gdpr_requests_user_id_fkey", LocalColumn: "user_id", Columns: profileColumns}).
		OrderBy("created_at", false).
		WithLimit(listLimit)

	rows := make([]model.GdprRequest, 0)
	if err := s.selectInto(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list gdpr requests: %w", err)
	}
	for i := range rows {
		rows[i].Normalize()
	}
	return rows, nil
}

func (s *Service) ListContentFlags(ctx context.Context) ([]model.ContentFlag, error) {
	q := gateway.From("content_flags").
		Select("*").
		Embed(gateway.Embed{Alias: "reporter", Table: "profiles", Hint: "content_flags_reported_by_fkey", LocalColumn: "reported_by", Columns: profileColumns}).
		Embed(gateway.Embed{Alias: "target_user", Table: "profiles", Hint: "content_flags_target_user_id_fkey", LocalColumn: "target_user_id", Columns: profileColumns}).
		OrderBy("created_at", false).
		WithLimit(listLimit)

	rows := make([]model.ContentFlag, 0)
	if err := s.selectInto(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list content flags: %w", err)
	}
	for i := range rows {
		rows[i].Normalize()
	}
	return rows, nil
}

// DecideAgeVerification approves or rejects a request; action is "approve" or "reject".
func (s *Service) DecideAgeVerification(ctx context.Context, id, action, reason, actorID string) error {
	return s.decide(ctx, transition.EntityAgeVerification, id, action, reason, actorID)
}

// ProcessGdprRequest completes or rejects a request; notes are mandatory either way.
func (s *Service) ProcessGdprRequest(ctx context.Context, id, action, notes, actorID string) error {
	return s.decide(ctx, transition.EntityGdpr, id, action, notes, actorID)
}

func (s *Service) ResolveContentFlag(ctx context.Context, id, action, resolution, actorID string) error {
	return s.decide(ctx, transition.EntityContentFlag, id, action, resolution, actorID)
}

func (s *Service) decide(ctx context.Context, entity, id, action, reason, actorID string) error {
	t, err := transition.Lookup(entity, action)
	if err != nil {
		return err
	}
	if s.transitions == nil {
		return fmt.Errorf("compliance transitions are not configured")
	}
	return s.transitions.Apply(ctx, t, transition.Request{ID: id, Reason: reason, ActorID: actorID})
}

func (s *Service) selectInto(ctx context.Context, q gateway.Query, dest any) error {
	if s.gw == nil {
		return fmt.Errorf("compliance gateway is nil")
	}
	return gateway.SelectInto(ctx, s.gw, q, dest)
}

// documentLink passes absolute URLs through and signs bare object keys.
func (s *Service) documentLink(ctx context.Context, raw *string) string {
	if raw == nil {
		return ""
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return ""
	}
	if parsed, err := url.Parse(value); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return value
	}
	if s.signer == nil {
		return ""
	}
	signed, err := s.signer.PresignGet(ctx, value, s.presignTTL)
	if err != nil {
		s.logger.Warn("presign verification document failed", zap.Error(err))
		return ""
	}
	return signed
}
