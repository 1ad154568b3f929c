package rules

import (
	"fmt"
	"math"
)

// FormatPrice renders an integer minor-unit amount as dollars, e.g. 1999 -> "$19.99".
func FormatPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minor/100, minor%100)
}

func MinorToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// ApprovalRate is approved/(approved+rejected) as a percentage rounded to one
// decimal place, 0 when nothing has been decided yet.
func ApprovalRate(approved, rejected int64) float64 {
	total := approved + rejected
	if total <= 0 {
		return 0
	}
	return math.Round(float64(approved)/float64(total)*1000) / 10
}
