package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

// ModerationAction is the audit row written after console-side transitions.
type ModerationAction struct {
	ID              string                     `json:"id"`
	CreatedAt       time.Time                  `json:"created_at"`
	AdminID         string                     `json:"admin_id"`
	ActionType      enums.ModerationActionType `json:"action_type"`
	TargetUserID    *string                    `json:"target_user_id"`
	TargetContentID *string                    `json:"target_content_id"`
	Reason          *string                    `json:"reason"`
	Notes           *string                    `json:"notes"`
	Metadata        map[string]any             `json:"metadata"`
	IPAddress       *string                    `json:"ip_address"`
	Result          string                     `json:"result"`
}
