package models

import (
	"time"

	"guildhall/brackets"
)

type TournamentFormat string

const (
	FormatSingle TournamentFormat = "single"
	FormatDouble TournamentFormat = "double"
)

// Tournament holds the registration list and, once generated, the full match
// list. Registrations are immutable after bracket generation.
type Tournament struct {
	TournamentID string                    `json:"tournamentId" bson:"tournamentId"`
	Title        string                    `json:"title" bson:"title"`
	GameMode     string                    `json:"gameMode" bson:"gameMode"`
	Format       TournamentFormat          `json:"format" bson:"format"`
	Status       brackets.TournamentStatus `json:"status" bson:"status"`
	Participants []brackets.Participant    `json:"participants" bson:"participants"`
	Matches      []brackets.Match          `json:"matches" bson:"matches"`
	CreatedBy    string                    `json:"createdBy" bson:"createdBy"`
	CreatedAt    time.Time                 `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time                 `json:"updatedAt" bson:"updated_at"`
}
