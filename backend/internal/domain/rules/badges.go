package rules

type UserBadge string

const (
	BadgeBanned   UserBadge = "Banned"
	BadgeVerified UserBadge = "Verified"
	BadgeActive   UserBadge = "Active"
)

func BadgeFor(isBanned, isVerified bool) UserBadge {
	switch {
	case isBanned:
		return BadgeBanned
	case isVerified:
		return BadgeVerified
	default:
		return BadgeActive
	}
}
