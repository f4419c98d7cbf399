// Package brackets builds and advances knockout tournament brackets.
// All functions are stateless transformations over in-memory match lists;
// persistence is the caller's concern.
package brackets

import "fmt"

// Participant identifies one contestant in a bracket. Immutable once a
// bracket has been generated.
type Participant struct {
	UID           string `json:"uid" bson:"uid"`
	CharacterID   string `json:"characterId" bson:"characterId"`
	CharacterName string `json:"characterName" bson:"characterName"`
	Class         string `json:"class" bson:"class"`
}

type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

// Bracket side, set only for double elimination.
type Bracket string

const (
	BracketWinner Bracket = "A"
	BracketLoser  Bracket = "B"
	BracketFinal  Bracket = "final"
)

// Match is one node of the bracket tree. Player slots are nil for byes and
// for placeholders still waiting on an upstream result.
type Match struct {
	ID          string       `json:"id" bson:"id"`
	Round       int          `json:"round" bson:"round"`
	MatchNumber int          `json:"matchNumber" bson:"matchNumber"`
	Player1     *Participant `json:"player1" bson:"player1"`
	Player2     *Participant `json:"player2" bson:"player2"`
	Winner      *Participant `json:"winner" bson:"winner"`
	Status      MatchStatus  `json:"status" bson:"status"`
	Bracket     Bracket      `json:"bracket,omitempty" bson:"bracket,omitempty"`

	// Loser-bracket source slots. Declared for double elimination but not
	// populated by the builder: losers are not routed automatically.
	FromMatchA string `json:"fromMatchA,omitempty" bson:"fromMatchA,omitempty"`
	FromMatchB string `json:"fromMatchB,omitempty" bson:"fromMatchB,omitempty"`
}

// TournamentStatus is computed from the match list; the original data model
// kept no explicit terminal signal.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusInProgress   TournamentStatus = "in_progress"
	StatusCompleted    TournamentStatus = "completed"
)

// ComputeStatus derives the tournament state from its matches. A tournament
// with no matches has not started; one with any unfinished match is running.
// Because loser-bracket matches are never fed automatically, a
// double-elimination bracket stays in_progress until its loser side is
// populated and played out by hand.
func ComputeStatus(matches []Match) TournamentStatus {
	if len(matches) == 0 {
		return StatusRegistration
	}
	for _, m := range matches {
		if m.Status != MatchCompleted {
			return StatusInProgress
		}
	}
	return StatusCompleted
}

// Champion returns the winner of the last completed match of the highest
// round, or nil if the bracket is still running.
func Champion(matches []Match) *Participant {
	if ComputeStatus(matches) != StatusCompleted {
		return nil
	}
	var last *Match
	for i := range matches {
		m := &matches[i]
		if m.Bracket == BracketFinal {
			return m.Winner
		}
		if last == nil || m.Round > last.Round {
			last = m
		}
	}
	if last == nil {
		return nil
	}
	return last.Winner
}

func matchID(b Bracket, round, number int) string {
	switch b {
	case BracketLoser:
		return fmt.Sprintf("lb-r%d-m%d", round, number)
	case BracketFinal:
		return "final"
	default:
		return fmt.Sprintf("r%d-m%d", round, number)
	}
}

func bracketSize(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
