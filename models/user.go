package models

import "time"

// User is a guild member account. Characters are the in-game identities the
// member plays; marketplace and bracket entries reference a character, not
// the account directly.
type User struct {
	UserID        string      `json:"userid" bson:"userid"`
	Username      string      `json:"username" bson:"username"`
	Password      string      `json:"-" bson:"password"`
	DiscordName   string      `json:"discordName" bson:"discordName"`
	Gold          int64       `json:"gold" bson:"gold"`
	Roles         []string    `json:"roles" bson:"roles"`
	Characters    []Character `json:"characters" bson:"characters"`
	RefreshToken  string      `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time   `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time   `json:"lastLogin" bson:"last_login,omitempty"`
	CreatedAt     time.Time   `json:"createdAt" bson:"created_at"`
}

type Character struct {
	CharacterID   string `json:"characterId" bson:"characterId"`
	CharacterName string `json:"characterName" bson:"characterName"`
	Class         string `json:"class" bson:"class"`
	ItemLevel     int    `json:"itemLevel" bson:"itemLevel"`
}

const (
	RoleMember   = "member"
	RoleMerchant = "merchant"
	RoleLeader   = "leader"
)
