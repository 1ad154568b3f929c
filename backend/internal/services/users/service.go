package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/rules"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/pkg/validate"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
)

const (
	profilesTable = "profiles"

	defaultBanReason   = "Banned by admin"
	defaultUnbanReason = "Unbanned by admin"
)

var ErrValidation = errors.New("validation error")

type Service struct {
	gw          gateway.Gateway
	invalidator transition.Invalidator
}

type User struct {
	model.Profile
	Badge rules.UserBadge
}

type SearchResult struct {
	Items     []User
	Truncated bool
}

type ModerationRequest struct {
	UserID  string
	Reason  string
	Notes   string
	Confirm bool
}

func NewService(gw gateway.Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) WithInvalidator(inv transition.Invalidator) *Service {
	s.invalidator = inv
	return s
}

// Search narrows the newest 100 profiles by display name or email. The backend
// is not queried per term, so Truncated reports when matches may be missing.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	if s.gw == nil {
		return SearchResult{}, fmt.Errorf("users gateway is nil")
	}

	q := gateway.From(profilesTable).Select("*").OrderBy("created_at", false).WithLimit(rules.ListLimit)
	profiles := make([]model.Profile, 0)
	if err := gateway.SelectInto(ctx, s.gw, q, &profiles); err != nil {
		return SearchResult{}, fmt.Errorf("list users: %w", err)
	}

	out := SearchResult{Items: make([]User, 0, len(profiles)), Truncated: len(profiles) >= rules.ListLimit}
	for _, p := range profiles {
		email := ""
		if p.Email != nil {
			email = *p.Email
		}
		if !rules.MatchesSearch(term, p.DisplayName, email) {
			continue
		}
		out.Items = append(out.Items, User{Profile: p, Badge: rules.BadgeFor(p.IsBanned, p.IsVerified)})
	}
	return out, nil
}

// Ban calls the ban_user procedure. The backend invalidates sessions and
// records the moderation action itself.
func (s *Service) Ban(ctx context.Context, req ModerationRequest) error {
	if !req.Confirm {
		return transition.ErrConfirmationRequired
	}
	return s.call(ctx, "ban_user", "ban_reason", defaultBanReason, req)
}

func (s *Service) Unban(ctx context.Context, req ModerationRequest) error {
	return s.call(ctx, "unban_user", "unban_reason", defaultUnbanReason, req)
}

func (s *Service) call(ctx context.Context, procedure, reasonKey, defaultReason string, req ModerationRequest) error {
	userID := strings.TrimSpace(req.UserID)
	if !validate.UUID(userID) {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if s.gw == nil {
		return fmt.Errorf("users gateway is nil")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultReason
	}
	var notes any
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = trimmed
	}

	_, err := s.gw.RPC(ctx, procedure, map[string]any{
		"target_user_id": userID,
		reasonKey:        reason,
		"admin_notes":    notes,
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", procedure, userID, err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return nil
}
