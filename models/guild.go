package models

import "time"

// Guild is a single document; the server manages exactly one guild.
type Guild struct {
	GuildID      string        `json:"guildid" bson:"guildid"`
	Name         string        `json:"name" bson:"name"`
	Announcement string        `json:"announcement" bson:"announcement"`
	Members      []GuildMember `json:"members" bson:"members"`
	GoldDonated  int64         `json:"goldDonated" bson:"goldDonated"`
	CashDonated  int64         `json:"cashDonated" bson:"cashDonated"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

type GuildMember struct {
	UserID        string    `json:"userid" bson:"userid"`
	CharacterName string    `json:"characterName" bson:"characterName"`
	Role          string    `json:"role" bson:"role"`
	JoinedAt      time.Time `json:"joinedAt" bson:"joined_at"`
}
