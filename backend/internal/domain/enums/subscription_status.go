package enums

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionRefunded  SubscriptionStatus = "refunded"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionUnpaid    SubscriptionStatus = "unpaid"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionTrialing  SubscriptionStatus = "trialing"
	SubscriptionUnknown   SubscriptionStatus = "unknown"
)

// ParseSubscriptionStatus accepts both spellings of cancelled; billing
// webhooks write "canceled" while the console writes "cancelled".
func ParseSubscriptionStatus(raw string) SubscriptionStatus {
	switch value := normalize(raw); value {
	case "canceled", string(SubscriptionCancelled):
		return SubscriptionCancelled
	case string(SubscriptionActive):
		return SubscriptionActive
	case string(SubscriptionRefunded):
		return SubscriptionRefunded
	case string(SubscriptionPastDue):
		return SubscriptionPastDue
	case string(SubscriptionUnpaid):
		return SubscriptionUnpaid
	case string(SubscriptionExpired):
		return SubscriptionExpired
	case string(SubscriptionTrialing):
		return SubscriptionTrialing
	default:
		return SubscriptionUnknown
	}
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentUnknown   PaymentStatus = "unknown"
)

func ParsePaymentStatus(raw string) PaymentStatus {
	switch PaymentStatus(normalize(raw)) {
	case PaymentCompleted:
		return PaymentCompleted
	case PaymentPending:
		return PaymentPending
	case PaymentFailed:
		return PaymentFailed
	case PaymentRefunded:
		return PaymentRefunded
	default:
		return PaymentUnknown
	}
}
