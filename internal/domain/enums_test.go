package domain

import "testing"

func TestStatusAdvance(t *testing.T) {
	cases := []struct {
		from, to SessionStatus
		want     bool
	}{
		{StatusGenerated, StatusOngoing, true},
		{StatusGenerated, StatusCompleted, true},
		{StatusOngoing, StatusCompleted, true},
		{StatusOngoing, StatusGenerated, false},
		{StatusCompleted, StatusOngoing, false},
		{StatusCompleted, StatusGenerated, false},
		{StatusGenerated, StatusGenerated, false},
		{StatusOngoing, StatusOngoing, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusOngoing, SessionStatus("BOGUS"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvance(tc.to); got != tc.want {
			t.Errorf("CanAdvance(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusGenerated.Terminal() || StatusOngoing.Terminal() {
		t.Fatal("only COMPLETED should be terminal")
	}
	if !StatusCompleted.Terminal() {
		t.Fatal("COMPLETED should be terminal")
	}
}

func TestUnknownStatusRepairable(t *testing.T) {
	// A record with a garbled status may still be advanced to a known one.
	if !SessionStatus("UNKNOWN").CanAdvance(StatusCompleted) {
		t.Fatal("unknown status should allow repair to a valid status")
	}
}
