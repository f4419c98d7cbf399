package trade

import (
	"testing"

	"guildhall/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.TradeStatus
		want     bool
	}{
		{models.TradeOpen, models.TradeReserved, true},
		{models.TradeOpen, models.TradeCancelled, true},
		{models.TradeReserved, models.TradePaid, true},
		{models.TradeReserved, models.TradeCancelled, true},
		{models.TradePaid, models.TradeDelivered, true},
		{models.TradeDelivered, models.TradeCompleted, true},

		// Cancellation closes once money has moved.
		{models.TradePaid, models.TradeCancelled, false},
		{models.TradeDelivered, models.TradeCancelled, false},

		// No skipping or rewinding.
		{models.TradeOpen, models.TradePaid, false},
		{models.TradeOpen, models.TradeCompleted, false},
		{models.TradeReserved, models.TradeOpen, false},
		{models.TradeDelivered, models.TradePaid, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	all := []models.TradeStatus{
		models.TradeOpen, models.TradeReserved, models.TradePaid,
		models.TradeDelivered, models.TradeCompleted, models.TradeCancelled,
	}
	for _, terminal := range []models.TradeStatus{models.TradeCompleted, models.TradeCancelled} {
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Errorf("%s should be terminal, but transitions to %s", terminal, to)
			}
		}
	}
}
