package enums

type AgeVerificationStatus string

const (
	AgeVerificationPending  AgeVerificationStatus = "pending"
	AgeVerificationApproved AgeVerificationStatus = "approved"
	AgeVerificationRejected AgeVerificationStatus = "rejected"
	AgeVerificationUnknown  AgeVerificationStatus = "unknown"
)

func ParseAgeVerificationStatus(raw string) AgeVerificationStatus {
	switch AgeVerificationStatus(normalize(raw)) {
	case AgeVerificationPending:
		return AgeVerificationPending
	case AgeVerificationApproved:
		return AgeVerificationApproved
	case AgeVerificationRejected:
		return AgeVerificationRejected
	default:
		return AgeVerificationUnknown
	}
}

type GdprStatus string

const (
	GdprPending    GdprStatus = "pending"
	GdprProcessing GdprStatus = "processing"
	GdprCompleted  GdprStatus = "completed"
	GdprRejected   GdprStatus = "rejected"
	GdprUnknown    GdprStatus = "unknown"
)

func ParseGdprStatus(raw string) GdprStatus {
	switch GdprStatus(normalize(raw)) {
	case GdprPending:
		return GdprPending
	case GdprProcessing:
		return GdprProcessing
	case GdprCompleted:
		return GdprCompleted
	case GdprRejected:
		return GdprRejected
	default:
		return GdprUnknown
	}
}

type ContentFlagStatus string

const (
	ContentFlagPending   ContentFlagStatus = "pending"
	ContentFlagResolved  ContentFlagStatus = "resolved"
	ContentFlagDismissed ContentFlagStatus = "dismissed"
	ContentFlagUnknown   ContentFlagStatus = "unknown"
)

func ParseContentFlagStatus(raw string) ContentFlagStatus {
	switch ContentFlagStatus(normalize(raw)) {
	case ContentFlagPending:
		return ContentFlagPending
	case ContentFlagResolved:
		return ContentFlagResolved
	case ContentFlagDismissed:
		return ContentFlagDismissed
	default:
		return ContentFlagUnknown
	}
}
