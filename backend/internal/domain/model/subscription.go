package model

import (
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type SubscriptionPlan struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	DurationDays    int       `json:"duration_days"`
	PriceAmount     int64     `json:"price_amount"`
	Currency        string    `json:"currency"`
	StripePriceID   *string   `json:"stripe_price_id"`
	StripeProductID *string   `json:"stripe_product_id"`
	Features        []string  `json:"features"`
	IsActive        bool      `json:"is_active"`
	DisplayOrder    int       `json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PlanRef struct {
	Name        string `json:"name"`
	PriceAmount int64  `json:"price_amount"`
	Currency    string `json:"currency"`
}

type UserSubscription struct {
	ID                   string                   `json:"id"`
	UserID               string                   `json:"user_id"`
	SubscriptionPlanID   string                   `json:"subscription_plan_id"`
	StripeSubscriptionID *string                  `json:"stripe_subscription_id"`
	StripeCustomerID     *string                  `json:"stripe_customer_id"`
	StatusRaw            string                   `json:"status"`
	Status               enums.SubscriptionStatus `json:"-"`
	StartDate            string                   `json:"start_date"`
	EndDate              string                   `json:"end_date"`
	AutoRenew            bool                     `json:"auto_renew"`
	CancelledAt          *time.Time               `json:"cancelled_at"`
	RefundedAt           *time.Time               `json:"refunded_at"`
	RefundReason         *string                  `json:"refund_reason"`
	PaymentMethod        *string                  `json:"payment_method"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
	Profile              *ProfileRef              `json:"profiles"`
	Plan                 *PlanRef                 `json:"subscription_plans"`
}

func (s *UserSubscription) Normalize() {
	s.Status = enums.ParseSubscriptionStatus(s.StatusRaw)
}

type PaymentTransaction struct {
	Amount    int64               `json:"amount"`
	Currency  string              `json:"currency"`
	StatusRaw string              `json:"status"`
	Status    enums.PaymentStatus `json:"-"`
	CreatedAt time.Time           `json:"created_at"`
}

func (p *PaymentTransaction) Normalize() {
	p.Status = enums.ParsePaymentStatus(p.StatusRaw)
}
