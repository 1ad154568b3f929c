package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/rules"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/audit"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
)

const (
	plansTable         = "subscription_plans"
	subscriptionsTable = "user_subscriptions"
)

var ErrValidation = errors.New("validation error")

type Transitioner interface {
	Apply(ctx context.Context, t transition.Transition, req transition.Request) error
}

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

type Service struct {
	gw          gateway.Gateway
	transitions Transitioner
	audit       AuditRecorder
	invalidator transition.Invalidator
}

type SearchResult struct {
	Items     []model.UserSubscription
	Truncated bool
}

func NewService(gw gateway.Gateway, transitions Transitioner, recorder AuditRecorder) *Service {
	return &Service{
		gw:          gw,
		transitions: transitions,
		audit:       recorder,
	}
}

func (s *Service) WithInvalidator(inv transition.Invalidator) *Service {
	s.invalidator = inv
	return s
}

func (s *Service) ListPlans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	if s.gw == nil {
		return nil, fmt.Errorf("subscriptions gateway is nil")
	}
	plans := make([]model.SubscriptionPlan, 0)
	q := gateway.From(plansTable).Select("*").OrderBy("price_amount", true)
	if err := gateway.SelectInto(ctx, s.gw, q, &plans); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// TogglePlan writes the opposite of the is_active value the caller last saw
// and returns it. The plan is not re-read first.
func (s *Service) TogglePlan(ctx context.Context, id string, currentlyActive bool, actorID string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("%w: plan id is required", ErrValidation)
	}
	if s.gw == nil {
		return false, fmt.Errorf("subscriptions gateway is nil")
	}

	next := !currentlyActive
	if err := s.gw.Update(ctx, plansTable, id, map[string]any{"is_active": next}); err != nil {
		return false, fmt.Errorf("toggle plan %s: %w", id, err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	if s.audit != nil {
		s.audit.Record(ctx, audit.Entry{
			AdminID:         actorID,
			ActionType:      enums.ActionOther,
			TargetContentID: id,
			Metadata:        map[string]any{"table": plansTable, "is_active": next},
		})
	}
	return next, nil
}

// Search narrows the newest 100 subscriptions by subscriber name or email.
// Matches outside that page are not seen; Truncated reports when the page was full.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	if s.gw == nil {
		return SearchResult{}, fmt.Errorf("subscriptions gateway is nil")
	}

	q := gateway.From(subscriptionsTable).
		Select("*").
		Embed(gateway.Embed{Table: "profiles", Hint: "user_subscriptions_user_id_fkey", LocalColumn: "user_id", Columns: []string{"display_name", "email"}}).
		Embed(gateway.Embed{Table: plansTable, LocalColumn: "subscription_plan_id", Columns: []string{"name", "price_amount", "currency"}}).
		OrderBy("created_at", false).
		WithLimit(rules.ListLimit)

	rows := make([]model.UserSubscription, 0)
	if err := gateway.SelectInto(ctx, s.gw, q, &rows); err != nil {
		return SearchResult{}, fmt.Errorf("list subscriptions: %w", err)
	}

	out := SearchResult{Items: make([]model.UserSubscription, 0, len(rows)), Truncated: len(rows) >= rules.ListLimit}
	for _, row := range rows {
		row.Normalize()
		if !rules.MatchesSearch(term, row.Profile.Name(), row.Profile.EmailOrEmpty()) {
			continue
		}
		out.Items = append(out.Items, row)
	}
	return out, nil
}

func (s *Service) Cancel(ctx context.Context, id string, confirm bool, actorID string) error {
	return s.apply(ctx, transition.SubscriptionCancel, transition.Request{ID: id, Confirm: confirm, ActorID: actorID})
}

func (s *Service) Refund(ctx context.Context, id, reason, actorID string) error {
	return s.apply(ctx, transition.SubscriptionRefund, transition.Request{ID: id, Reason: reason, ActorID: actorID})
}

func (s *Service) apply(ctx context.Context, t transition.Transition, req transition.Request) error {
	if s.transitions == nil {
		return fmt.Errorf("subscription transitions are not configured")
	}
	return s.transitions.Apply(ctx, t, req)
}
