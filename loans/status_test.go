package loans

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusWaitingApproval, StatusActive, true},
		{StatusWaitingApproval, StatusRejected, true},
		{StatusActive, StatusReturned, true},
		{StatusReturned, StatusCompleted, true},

		// No skipping ahead.
		{StatusWaitingApproval, StatusReturned, false},
		{StatusWaitingApproval, StatusCompleted, false},
		{StatusActive, StatusCompleted, false},

		// Rejection only before approval.
		{StatusActive, StatusRejected, false},
		{StatusReturned, StatusRejected, false},

		// No going back.
		{StatusActive, StatusWaitingApproval, false},
		{StatusReturned, StatusActive, false},

		// Unknown states go nowhere.
		{"bogus", StatusActive, false},
		{StatusActive, "bogus", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	all := []string{StatusWaitingApproval, StatusActive, StatusReturned, StatusCompleted, StatusRejected}
	for _, terminal := range []string{StatusCompleted, StatusRejected} {
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Errorf("%s should be terminal, but transitions to %s", terminal, to)
			}
		}
	}
}
