package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const adminUsersTable = "admin_users"

// AdminStore reads and updates admin_users rows through the backend gateway.
type AdminStore struct {
	gw gateway.Gateway
}

func NewAdminStore(gw gateway.Gateway) *AdminStore {
	return &AdminStore{gw: gw}
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.AdminUser{}, ErrInvalidInput
	}
	return s.findOne(ctx, gateway.From(adminUsersTable).Select("*").Eq("email", email).WithLimit(1))
}

func (s *AdminStore) GetByID(ctx context.Context, id string) (model.AdminUser, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.AdminUser{}, ErrInvalidInput
	}
	return s.findOne(ctx, gateway.From(adminUsersTable).Select("*").Eq("id", id).WithLimit(1))
}

func (s *AdminStore) MarkLogin(ctx context.Context, id string, at time.Time) error {
	return s.update(ctx, id, map[string]any{"last_login_at": at.UTC()})
}

func (s *AdminStore) SaveTOTPSecret(ctx context.Context, id, sealedSecret string) error {
	return s.update(ctx, id, map[string]any{
		"two_factor_secret":  sealedSecret,
		"two_factor_enabled": false,
	})
}

func (s *AdminStore) EnableTOTP(ctx context.Context, id string) error {
	return s.update(ctx, id, map[string]any{"two_factor_enabled": true})
}

func (s *AdminStore) findOne(ctx context.Context, q gateway.Query) (model.AdminUser, error) {
	if s == nil || s.gw == nil {
		return model.AdminUser{}, fmt.Errorf("admin store gateway is nil")
	}
	var rows []model.AdminUser
	if err := gateway.SelectInto(ctx, s.gw, q, &rows); err != nil {
		return model.AdminUser{}, fmt.Errorf("load admin user: %w", err)
	}
	if len(rows) == 0 {
		return model.AdminUser{}, ErrAdminNotFound
	}
	admin := rows[0]
	admin.Normalize()
	return admin, nil
}

func (s *AdminStore) update(ctx context.Context, id string, patch map[string]any) error {
	if s == nil || s.gw == nil {
		return fmt.Errorf("admin store gateway is nil")
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.gw.Update(ctx, adminUsersTable, id, patch); err != nil {
		return fmt.Errorf("update admin user: %w", err)
	}
	return nil
}
