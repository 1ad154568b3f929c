package rules

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{minor: 1999, want: "$19.99"},
		{minor: 0, want: "$0.00"},
		{minor: 5, want: "$0.05"},
		{minor: 100000, want: "$1000.00"},
		{minor: -250, want: "-$2.50"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.minor); got != tc.want {
			t.Fatalf("FormatPrice(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}

func TestApprovalRate(t *testing.T) {
	cases := []struct {
		approved, rejected int64
		want               float64
	}{
		{approved: 0, rejected: 0, want: 0},
		{approved: 3, rejected: 0, want: 100},
		{approved: 0, rejected: 7, want: 0},
		{approved: 2, rejected: 1, want: 66.7},
		{approved: 1, rejected: 2, want: 33.3},
	}
	for _, tc := range cases {
		if got := ApprovalRate(tc.approved, tc.rejected); got != tc.want {
			t.Fatalf("ApprovalRate(%d, %d) = %v, want %v", tc.approved, tc.rejected, got, tc.want)
		}
	}
}
