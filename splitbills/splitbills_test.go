package splitbills

import (
	"testing"

	"guildhall/models"
)

func TestIsParty(t *testing.T) {
	bill := models.Bill{
		OwnerUID: "owner",
		Participants: []models.BillParticipant{
			{UserID: "p1", CharacterName: "Aria"},
			{UserID: "p2", CharacterName: "Bram"},
		},
	}

	tests := []struct {
		userID string
		want   bool
	}{
		{"owner", true},
		{"p1", true},
		{"p2", true},
		{"stranger", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isParty(bill, tt.userID); got != tt.want {
			t.Errorf("isParty(bill, %q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
