package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type PhotoModerationQueueEntry struct {
	ID                string            `json:"id"`
	PhotoID           string            `json:"photo_id"`
	UserID            string            `json:"user_id"`
	SubmittedAt       time.Time         `json:"submitted_at"`
	StatusRaw         string            `json:"status"`
	Status            enums.PhotoStatus `json:"-"`
	ReviewedBy        *string           `json:"reviewed_by"`
	ReviewedAt        *time.Time        `json:"reviewed_at"`
	RejectionReason   *string           `json:"rejection_reason"`
	AIModerationScore *float64          `json:"ai_moderation_score"`
	AIFlags           []string          `json:"ai_flags"`
	Notes             *string           `json:"notes"`
	PhotoURL          string            `json:"-"`
}

func (e *PhotoModerationQueueEntry) Normalize() {
	e.Status = enums.ParsePhotoStatus(e.StatusRaw)
}
