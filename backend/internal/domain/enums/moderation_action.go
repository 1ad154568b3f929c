package enums

type ModerationActionType string

const (
	ActionBanUser                ModerationActionType = "ban_user"
	ActionUnbanUser              ModerationActionType = "unban_user"
	ActionSuspendUser            ModerationActionType = "suspend_user"
	ActionUnsuspendUser          ModerationActionType = "unsuspend_user"
	ActionVerifyUser             ModerationActionType = "verify_user"
	ActionUnverifyUser           ModerationActionType = "unverify_user"
	ActionDeletePhoto            ModerationActionType = "delete_photo"
	ActionApprovePhoto           ModerationActionType = "approve_photo"
	ActionRejectPhoto            ModerationActionType = "reject_photo"
	ActionResolveReport          ModerationActionType = "resolve_report"
	ActionDismissReport          ModerationActionType = "dismiss_report"
	ActionAddNote                ModerationActionType = "add_note"
	ActionSendWarning            ModerationActionType = "send_warning"
	ActionDeleteAccount          ModerationActionType = "delete_account"
	ActionGrantCredits           ModerationActionType = "grant_credits"
	ActionRefundPayment          ModerationActionType = "refund_payment"
	ActionApproveAgeVerification ModerationActionType = "approve_age_verification"
	ActionRejectAgeVerification  ModerationActionType = "reject_age_verification"
	ActionUpdateSubscription     ModerationActionType = "update_subscription"
	ActionForceLogout            ModerationActionType = "force_logout"
	ActionEditProfile            ModerationActionType = "edit_profile"
	ActionOther                  ModerationActionType = "other"
)

var moderationActionTypes = map[ModerationActionType]struct{}{
	ActionBanUser:                {},
	ActionUnbanUser:              {},
	ActionSuspendUser:            {},
	ActionUnsuspendUser:          {},
	ActionVerifyUser:             {},
	ActionUnverifyUser:           {},
	ActionDeletePhoto:            {},
	ActionApprovePhoto:           {},
	ActionRejectPhoto:            {},
	ActionResolveReport:          {},
	ActionDismissReport:          {},
	ActionAddNote:                {},
	ActionSendWarning:            {},
	ActionDeleteAccount:          {},
	ActionGrantCredits:           {},
	ActionRefundPayment:          {},
	ActionApproveAgeVerification: {},
	ActionRejectAgeVerification:  {},
	ActionUpdateSubscription:     {},
	ActionForceLogout:            {},
	ActionEditProfile:            {},
	ActionOther:                  {},
}

// ParseModerationActionType maps anything outside the closed set to "other".
func ParseModerationActionType(raw string) ModerationActionType {
	value := ModerationActionType(normalize(raw))
	if _, ok := moderationActionTypes[value]; ok {
		return value
	}
	return ActionOther
}

func (t ModerationActionType) Valid() bool {
	_, ok := moderationActionTypes[t]
	return ok
}
