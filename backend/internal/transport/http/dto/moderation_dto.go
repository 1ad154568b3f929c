package dto

import "time"

type PhotoQueueItem struct {
	ID                string     `json:"id"`
	PhotoID           string     `json:"photo_id"`
	UserID            string     `json:"user_id"`
	Status            string     `json:"status"`
	StatusRaw         string     `json:"status_raw"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	ReviewedBy        *string    `json:"reviewed_by"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	RejectionReason   *string    `json:"rejection_reason"`
	AIModerationScore *float64   `json:"ai_moderation_score"`
	AIFlags           []string   `json:"ai_flags"`
	Notes             *string    `json:"notes"`
	PhotoURL          string     `json:"photo_url"`
}

type PhotoQueueResponse struct {
	Items []PhotoQueueItem `json:"items"`
	Empty bool             `json:"empty"`
}

// DecisionRequest carries the reason, notes or resolution text of a transition.
type DecisionRequest struct {
	Reason  string `json:"reason"`
	Confirm bool   `json:"confirm"`
}

type AgeVerification struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	User               ProfileRef     `json:"user"`
	VerificationMethod string         `json:"verification_method"`
	Status             string         `json:"status"`
	StatusRaw          string         `json:"status_raw"`
	SubmittedAt        time.Time      `json:"submitted_at"`
	DocumentType       *string        `json:"document_type"`
	DocumentURL        string         `json:"document_url"`
	ReviewedBy         *string        `json:"reviewed_by"`
	ReviewedAt         *time.Time     `json:"reviewed_at"`
	RejectionReason    *string        `json:"rejection_reason"`
	Notes              *string        `json:"notes"`
	Metadata           map[string]any `json:"metadata"`
}

type AgeVerificationsResponse struct {
	Items []AgeVerification `json:"items"`
	Empty bool              `json:"empty"`
}

type GdprRequest struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	User            ProfileRef     `json:"user"`
	RequestType     string         `json:"request_type"`
	Status          string         `json:"status"`
	StatusRaw       string         `json:"status_raw"`
	CreatedAt       time.Time      `json:"created_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	DataDeliveredAt *time.Time     `json:"data_delivered_at"`
	AdminNotes      *string        `json:"admin_notes"`
	Metadata        map[string]any `json:"metadata"`
}

type GdprRequestsResponse struct {
	Items []GdprRequest `json:"items"`
	Empty bool          `json:"empty"`
}

type ContentFlag struct {
	ID              string     `json:"id"`
	ReportedBy      *string    `json:"reported_by"`
	Reporter        ProfileRef `json:"reporter"`
	TargetUserID    string     `json:"target_user_id"`
	TargetUser      ProfileRef `json:"target_user"`
	TargetContentID *string    `json:"target_content_id"`
	ContentType     *string    `json:"content_type"`
	FlagType        string     `json:"flag_type"`
	Description     *string    `json:"description"`
	Status          string     `json:"status"`
	StatusRaw       string     `json:"status_raw"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      *string    `json:"resolved_by"`
	Resolution      *string    `json:"resolution"`
}

type ContentFlagsResponse struct {
	Items []ContentFlag `json:"items"`
	Empty bool          `json:"empty"`
}
