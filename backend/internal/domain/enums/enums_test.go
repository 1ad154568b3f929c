package enums

import "testing"

func TestParseFallsBackToUnknown(t *testing.T) {
	if got := ParsePhotoStatus("in_review"); got != PhotoStatusUnknown {
		t.Fatalf("unexpected photo status: %s", got)
	}
	if got := ParseAgeVerificationStatus(""); got != AgeVerificationUnknown {
		t.Fatalf("unexpected age verification status: %s", got)
	}
	if got := ParseGdprStatus("archived"); got != GdprUnknown {
		t.Fatalf("unexpected gdpr status: %s", got)
	}
	if got := ParseContentFlagStatus("escalated"); got != ContentFlagUnknown {
		t.Fatalf("unexpected flag status: %s", got)
	}
	if got := ParseSubscriptionStatus("paused"); got != SubscriptionUnknown {
		t.Fatalf("unexpected subscription status: %s", got)
	}
	if got := ParseAdminRole("owner"); got != AdminRoleUnknown {
		t.Fatalf("unexpected role: %s", got)
	}
}

func TestParseNormalizesCase(t *testing.T) {
	if got := ParsePhotoStatus(" Pending "); got != PhotoStatusPending {
		t.Fatalf("unexpected photo status: %s", got)
	}
	if got := ParseAdminRole("SUPER_ADMIN"); got != AdminRoleSuperAdmin {
		t.Fatalf("unexpected role: %s", got)
	}
}

func TestParseSubscriptionStatusAcceptsBothSpellings(t *testing.T) {
	for _, raw := range []string{"canceled", "cancelled", "CANCELLED"} {
		if got := ParseSubscriptionStatus(raw); got != SubscriptionCancelled {
			t.Fatalf("unexpected status for %q: %s", raw, got)
		}
	}
}

func TestModerationActionTypes(t *testing.T) {
	if len(moderationActionTypes) != 22 {
		t.Fatalf("unexpected action type count: %d", len(moderationActionTypes))
	}
	if got := ParseModerationActionType("approve_age_verification"); got != ActionApproveAgeVerification {
		t.Fatalf("unexpected action: %s", got)
	}
	if got := ParseModerationActionType("teleport_user"); got != ActionOther {
		t.Fatalf("unexpected fallback action: %s", got)
	}
	if ModerationActionType("teleport_user").Valid() {
		t.Fatalf("unknown action must not be valid")
	}
}

func TestAdminRoleValid(t *testing.T) {
	if !AdminRoleSupport.Valid() {
		t.Fatalf("support must be valid")
	}
	if AdminRoleUnknown.Valid() || AdminRole("Admin").Valid() {
		t.Fatalf("unknown or non-canonical roles must not be valid")
	}
}
