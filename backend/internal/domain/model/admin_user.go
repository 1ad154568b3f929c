package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type AdminUser struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	RoleRaw          string          `json:"role"`
	Role             enums.AdminRole `json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedBy        *string         `json:"created_by"`
	LastLoginAt      *time.Time      `json:"last_login_at"`
	IsActive         bool            `json:"is_active"`
	TwoFactorEnabled bool            `json:"two_factor_enabled"`
	Metadata         map[string]any  `json:"metadata"`
	PasswordHash     string          `json:"password_hash"`
	TwoFactorSecret  *string         `json:"two_factor_secret"`
}

func (a *AdminUser) Normalize() {
	a.Role = enums.ParseAdminRole(a.RoleRaw)
}
