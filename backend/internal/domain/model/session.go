package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type AdminSession struct {
	ID        string          `json:"id"`
	AdminID   string          `json:"admin_id"`
	Email     string          `json:"email"`
	Role      enums.AdminRole `json:"role"`
	UserAgent string          `json:"user_agent"`
	IP        string          `json:"ip"`
	ExpiresAt time.Time       `json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
}
