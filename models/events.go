package models

import "time"

// Event is a scheduled guild activity (raid, dungeon run, meetup).
type Event struct {
	EventID      string     `json:"eventid" bson:"eventid"`
	Title        string     `json:"title" bson:"title"`
	Category     string     `json:"category" bson:"category"`
	Date         time.Time  `json:"date" bson:"date"`
	Description  string     `json:"description" bson:"description"`
	MaxAttendees int        `json:"maxAttendees" bson:"maxAttendees"`
	Attendees    []Attendee `json:"attendees" bson:"attendees"`
	CreatedBy    string     `json:"createdBy" bson:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}

type Attendee struct {
	UserID        string    `json:"userid" bson:"userid"`
	CharacterID   string    `json:"characterId" bson:"characterId"`
	CharacterName string    `json:"characterName" bson:"characterName"`
	CheckinCode   string    `json:"-" bson:"checkinCode"`
	CheckedIn     bool      `json:"checkedIn" bson:"checkedIn"`
	RSVPAt        time.Time `json:"rsvpAt" bson:"rsvp_at"`
}
