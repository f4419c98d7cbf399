package models

import "time"

// Bill is a shared expense to be divided among participants. Expired bills
// are removed by a TTL index on expires_at.
type Bill struct {
	BillID           string            `json:"billId" bson:"billId"`
	Title            string            `json:"title" bson:"title"`
	Items            []BillItem        `json:"items" bson:"items"`
	ServiceFee       int64             `json:"serviceFee" bson:"serviceFee"`
	OwnerUID         string            `json:"ownerUid" bson:"ownerUid"`
	OwnerCharacterID string            `json:"ownerCharacterId" bson:"ownerCharacterId"`
	Participants     []BillParticipant `json:"participants" bson:"participants"`
	CreatedAt        time.Time         `json:"createdAt" bson:"created_at"`
	ExpiresAt        time.Time         `json:"expiresAt" bson:"expires_at"`
}

type BillItem struct {
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
}

type BillParticipant struct {
	UserID        string `json:"userid" bson:"userid"`
	CharacterName string `json:"characterName" bson:"characterName"`
	Paid          bool   `json:"paid" bson:"paid"`
}
