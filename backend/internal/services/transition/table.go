package transition

import (
	"strings"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

const (
	EntityPhoto           = "photo"
	EntityAgeVerification = "age_verification"
	EntityGdpr            = "gdpr_request"
	EntityContentFlag     = "content_flag"
	EntitySubscription    = "subscription"
)

var (
	PhotoApprove = Transition{
		Entity:          EntityPhoto,
		Action:          "approve",
		Table:           "photo_moderation_queue",
		Status:          string(enums.PhotoStatusApproved),
		TimestampColumn: "reviewed_at",
		ReviewerColumn:  "reviewed_by",
		AuditAction:     enums.ActionApprovePhoto,
	}
	PhotoReject = Transition{
		Entity:          EntityPhoto,
		Action:          "reject",
		Table:           "photo_moderation_queue",
		Status:          string(enums.PhotoStatusRejected),
		TimestampColumn: "reviewed_at",
		ReasonColumn:    "rejection_reason",
		ReasonRequired:  true,
		ReviewerColumn:  "reviewed_by",
		AuditAction:     enums.ActionRejectPhoto,
	}

	AgeVerificationApprove = Transition{
		Entity:          EntityAgeVerification,
		Action:          "approve",
		Table:           "age_verification_requests",
		Status:          string(enums.AgeVerificationApproved),
		TimestampColumn: "reviewed_at",
		ReasonColumn:    "rejection_reason",
		ReviewerColumn:  "reviewed_by",
		AuditAction:     enums.ActionApproveAgeVerification,
	}
	AgeVerificationReject = Transition{
		Entity:          EntityAgeVerification,
		Action:          "reject",
		Table:           "age_verification_requests",
		Status:          string(enums.AgeVerificationRejected),
		TimestampColumn: "reviewed_at",
		ReasonColumn:    "rejection_reason",
		ReasonRequired:  true,
		ReviewerColumn:  "reviewed_by",
		AuditAction:     enums.ActionRejectAgeVerification,
	}

	GdprComplete = Transition{
		Entity:          EntityGdpr,
		Action:          "complete",
		Table:           "gdpr_requests",
		Status:          string(enums.GdprCompleted),
		TimestampColumn: "completed_at",
		ReasonColumn:    "admin_notes",
		ReasonRequired:  true,
		AuditAction:     enums.ActionOther,
	}
	GdprReject = Transition{
		Entity:          EntityGdpr,
		Action:          "reject",
		Table:           "gdpr_requests",
		Status:          string(enums.GdprRejected),
		TimestampColumn: "completed_at",
		ReasonColumn:    "admin_notes",
		ReasonRequired:  true,
		AuditAction:     enums.ActionOther,
	}

	ContentFlagResolve = Transition{
		Entity:          EntityContentFlag,
		Action:          "resolve",
		Table:           "content_flags",
		Status:          string(enums.ContentFlagResolved),
		TimestampColumn: "resolved_at",
		ReasonColumn:    "resolution",
		ReasonRequired:  true,
		ReviewerColumn:  "resolved_by",
		AuditAction:     enums.ActionResolveReport,
	}
	ContentFlagDismiss = Transition{
		Entity:          EntityContentFlag,
		Action:          "dismiss",
		Table:           "content_flags",
		Status:          string(enums.ContentFlagDismissed),
		TimestampColumn: "resolved_at",
		ReasonColumn:    "resolution",
		ReasonRequired:  true,
		ReviewerColumn:  "resolved_by",
		AuditAction:     enums.ActionDismissReport,
	}

	SubscriptionCancel = Transition{
		Entity:          EntitySubscription,
		Action:          "cancel",
		Table:           "user_subscriptions",
		Status:          string(enums.SubscriptionCancelled),
		TimestampColumn: "cancelled_at",
		RequireConfirm:  true,
		AuditAction:     enums.ActionUpdateSubscription,
	}
	SubscriptionRefund = Transition{
		Entity:          EntitySubscription,
		Action:          "refund",
		Table:           "user_subscriptions",
		Status:          string(enums.SubscriptionRefunded),
		TimestampColumn: "refunded_at",
		ReasonColumn:    "refund_reason",
		ReasonRequired:  true,
		AuditAction:     enums.ActionRefundPayment,
	}
)

var legal = map[string]map[string]Transition{
	EntityPhoto: {
		"approve": PhotoApprove,
		"reject":  PhotoReject,
	},
	EntityAgeVerification: {
		"approve": AgeVerificationApprove,
		"reject":  AgeVerificationReject,
	},
	EntityGdpr: {
		"complete": GdprComplete,
		"reject":   GdprReject,
	},
	EntityContentFlag: {
		"resolve": ContentFlagResolve,
		"dismiss": ContentFlagDismiss,
	},
	EntitySubscription: {
		"cancel": SubscriptionCancel,
		"refund": SubscriptionRefund,
	},
}

// Lookup resolves a console action to its transition. Anything the console
// does not expose is ErrIllegalTransition.
func Lookup(entity, action string) (Transition, error) {
	actions, ok := legal[entity]
	if !ok {
		return Transition{}, ErrIllegalTransition
	}
	t, ok := actions[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return Transition{}, ErrIllegalTransition
	}
	return t, nil
}
