package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type AgeVerificationRequest struct {
	ID                 string                      `json:"id"`
	UserID             string                      `json:"user_id"`
	VerificationMethod string                      `json:"verification_method"`
	StatusRaw          string                      `json:"status"`
	Status             enums.AgeVerificationStatus `json:"-"`
	SubmittedAt        time.Time                   `json:"submitted_at"`
	DocumentURL        *string                     `json:"document_url"`
	DocumentType       *string                     `json:"document_type"`
	ReviewedBy         *string                     `json:"reviewed_by"`
	ReviewedAt         *time.Time                  `json:"reviewed_at"`
	RejectionReason    *string                     `json:"rejection_reason"`
	Notes              *string                     `json:"notes"`
	Metadata           map[string]any              `json:"metadata"`
	Profile            *ProfileRef                 `json:"profiles"`
	DocumentLink       string                      `json:"-"`
}

func (r *AgeVerificationRequest) Normalize() {
	r.Status = enums.ParseAgeVerificationStatus(r.StatusRaw)
}

type GdprRequest struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	RequestType     string           `json:"request_type"`
	StatusRaw       string           `json:"status"`
	Status          enums.GdprStatus `json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
	DataDeliveredAt *time.Time       `json:"data_delivered_at"`
	AdminNotes      *string          `json:"admin_notes"`
	Metadata        map[string]any   `json:"metadata"`
	Profile         *ProfileRef      `json:"profiles"`
}

func (r *GdprRequest) Normalize() {
	r.Status = enums.ParseGdprStatus(r.StatusRaw)
}

type ContentFlag struct {
	ID              string                  `json:"id"`
	ReportedBy      *string                 `json:"reported_by"`
	TargetUserID    string                  `json:"target_user_id"`
	TargetContentID *string                 `json:"target_content_id"`
	ContentType     *string                 `json:"content_type"`
	FlagType        string                  `json:"flag_type"`
	Description     *string                 `json:"description"`
	StatusRaw       string                  `json:"status"`
	Status          enums.ContentFlagStatus `json:"-"`
	CreatedAt       time.Time               `json:"created_at"`
	ResolvedAt      *time.Time              `json:"resolved_at"`
	ResolvedBy      *string                 `json:"resolved_by"`
	Resolution      *string                 `json:"resolution"`
	Reporter        *ProfileRef             `json:"reporter"`
	TargetUser      *ProfileRef             `json:"target_user"`
}

func (f *ContentFlag) Normalize() {
	f.Status = enums.ParseContentFlagStatus(f.StatusRaw)
}
