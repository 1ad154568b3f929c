package dto

import "time"

type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	DurationDays int       `json:"duration_days"`
	PriceAmount  int64     `json:"price_amount"`
	PriceDisplay string    `json:"price_display"`
	Currency     string    `json:"currency"`
	Features     []string  `json:"features"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type PlansResponse struct {
	Items []Plan `json:"items"`
	Empty bool   `json:"empty"`
}

// TogglePlanRequest carries the is_active value the console is showing.
type TogglePlanRequest struct {
	IsActive *bool `json:"is_active"`
}

type TogglePlanResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

type Subscription struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	User               ProfileRef `json:"user"`
	SubscriptionPlanID string     `json:"subscription_plan_id"`
	PlanName           string     `json:"plan_name"`
	PriceDisplay       string     `json:"price_display"`
	Status             string     `json:"status"`
	StatusRaw          string     `json:"status_raw"`
	StartDate          string     `json:"start_date"`
	EndDate            string     `json:"end_date"`
	AutoRenew          bool       `json:"auto_renew"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	RefundedAt         *time.Time `json:"refunded_at"`
	RefundReason       *string    `json:"refund_reason"`
	PaymentMethod      *string    `json:"payment_method"`
	CreatedAt          time.Time  `json:"created_at"`
}

type SubscriptionsResponse struct {
	Items     []Subscription `json:"items"`
	Empty     bool           `json:"empty"`
	Truncated bool           `json:"truncated"`
}
