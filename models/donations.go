package models

import "time"

type DonationKind string

const (
	DonationGold DonationKind = "gold"
	DonationCash DonationKind = "cash"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationRejected  DonationStatus = "rejected"
)

// Donation is a member's contribution to the guild, pending until a leader
// confirms it was actually received.
type Donation struct {
	DonationID    string         `json:"donationId" bson:"donationId"`
	Kind          DonationKind   `json:"kind" bson:"kind"`
	DonorUID      string         `json:"donorUid" bson:"donorUid"`
	CharacterName string         `json:"characterName" bson:"characterName"`
	Amount        int64          `json:"amount" bson:"amount"`
	Note          string         `json:"note,omitempty" bson:"note,omitempty"`
	Status        DonationStatus `json:"status" bson:"status"`
	DecidedBy     string         `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updated_at"`
}
