package brackets

import (
	"errors"
	"fmt"
)

var ErrMatchNotFound = errors.New("match not found")

// Advance records the winner of a match and seeds them into the downstream
// slot, mutating the given match list in place.
//
// The completed match keeps its round r and match number n; the winner lands
// in the round r+1 match numbered ceil(n/2), in player1 when n is odd and
// player2 when n is even. The downstream match becomes in_progress. The
// search stays within the completed match's own bracket; the winner of a
// bracket's last round feeds the grand final (player1 from the winner side,
// player2 from the loser side). When nothing is downstream — the final
// itself — the winner simply stops propagating.
func Advance(matches []Match, matchID string, winner Participant) error {
	cur := findByID(matches, matchID)
	if cur == nil {
		return ErrMatchNotFound
	}
	if cur.Status == MatchCompleted {
		return fmt.Errorf("match %s is already completed", matchID)
	}
	if !isPlayerOf(cur, winner) {
		return fmt.Errorf("winner %s is not a player of match %s", winner.UID, matchID)
	}

	w := winner
	cur.Winner = &w
	cur.Status = MatchCompleted

	next := findDownstream(matches, cur)
	if next == nil {
		return nil
	}

	seed := winner
	if next.Bracket == BracketFinal {
		if cur.Bracket == BracketLoser {
			next.Player2 = &seed
		} else {
			next.Player1 = &seed
		}
	} else if cur.MatchNumber%2 == 1 {
		next.Player1 = &seed
	} else {
		next.Player2 = &seed
	}
	next.Status = MatchInProgress
	return nil
}

func findByID(matches []Match, id string) *Match {
	for i := range matches {
		if matches[i].ID == id {
			return &matches[i]
		}
	}
	return nil
}

func isPlayerOf(m *Match, p Participant) bool {
	if m.Player1 != nil && m.Player1.UID == p.UID {
		return true
	}
	if m.Player2 != nil && m.Player2.UID == p.UID {
		return true
	}
	return false
}

func findDownstream(matches []Match, cur *Match) *Match {
	wantNumber := (cur.MatchNumber + 1) / 2
	for i := range matches {
		m := &matches[i]
		if m.Bracket == cur.Bracket && m.Round == cur.Round+1 && m.MatchNumber == wantNumber {
			return m
		}
	}
	// Last round of a side feeds the grand final.
	if cur.Bracket == BracketWinner || cur.Bracket == BracketLoser {
		for i := range matches {
			if matches[i].Bracket == BracketFinal {
				return &matches[i]
			}
		}
	}
	return nil
}
