package enums

import "strings"

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
	PhotoStatusFlagged  PhotoStatus = "flagged"
	PhotoStatusUnknown  PhotoStatus = "unknown"
)

func ParsePhotoStatus(raw string) PhotoStatus {
	switch PhotoStatus(normalize(raw)) {
	case PhotoStatusPending:
		return PhotoStatusPending
	case PhotoStatusApproved:
		return PhotoStatusApproved
	case PhotoStatusRejected:
		return PhotoStatusRejected
	case PhotoStatusFlagged:
		return PhotoStatusFlagged
	default:
		return PhotoStatusUnknown
	}
}

// Terminal reports whether a reviewer has already decided the entry.
func (s PhotoStatus) Terminal() bool {
	return s == PhotoStatusApproved || s == PhotoStatusRejected
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
