package rules

import "testing"

func TestMatchesSearch(t *testing.T) {
	cases := []struct {
		term, name, email string
		want              bool
	}{
		{term: "", name: "Jo", email: "", want: true},
		{term: "jo", name: "Joanna", email: "", want: true},
		{term: "EXAMPLE", name: "Kim", email: "kim@example.com", want: true},
		{term: " kim ", name: "KIMBERLY", email: "", want: true},
		{term: "zed", name: "Kim", email: "kim@example.com", want: false},
	}
	for _, tc := range cases {
		if got := MatchesSearch(tc.term, tc.name, tc.email); got != tc.want {
			t.Fatalf("MatchesSearch(%q, %q, %q) = %v, want %v", tc.term, tc.name, tc.email, got, tc.want)
		}
	}
}
