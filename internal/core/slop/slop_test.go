package slop

import "testing"

func TestMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pct  float64
		want string
	}{
		{100, "MAXIMUM SLOP DETECTED"},
		{96, "MAXIMUM SLOP DETECTED"},
		{95, "MAXIMUM SLOP DETECTED"},
		{94.99, "Corporate Email Energy"},
		{85, "Corporate Email Energy"},
		{75, "Aggressively Normal"},
		{60, "Statistically Average"},
		{50, "Slightly Unpredictable"},
		{30, "Interestingly Weird"},
		{15, "Delightfully Chaotic"},
		{5, "Off The Distribution"},
		{4, "SINGULARITY ACHIEVED"},
		{0, "SINGULARITY ACHIEVED"},
	}
	for _, tc := range cases {
		if got := Message(tc.pct); got.Title != tc.want {
			t.Fatalf("Message(%v) = %q, want %q", tc.pct, got.Title, tc.want)
		}
		if Message(tc.pct).Subtitle == "" {
			t.Fatalf("Message(%v) has empty subtitle", tc.pct)
		}
	}
}
