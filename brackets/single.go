package brackets

import "errors"

var ErrNotEnoughParticipants = errors.New("at least two participants are required")

// BuildSingleElimination constructs the full match tree for a knockout
// tournament from an ordered participant list. The caller decides seeding
// order (and shuffles beforehand if it wants randomized pairings).
//
// The bracket is padded to the next power of two with byes. With an odd
// participant count, one bye is placed at the front of the seed list and the
// rest at the back; round 1 pairs consecutive slots. Later rounds are empty
// placeholder matches awaiting advancement.
//
// Total matches produced is always bracketSize-1.
func BuildSingleElimination(participants []Participant) ([]Match, error) {
	return buildKnockout(participants, "")
}

func buildKnockout(participants []Participant, side Bracket) ([]Match, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	size := bracketSize(n)
	numByes := size - n

	slots := make([]*Participant, 0, size)
	if n%2 == 1 && numByes > 0 {
		// Odd participant count: one leading bye.
		slots = append(slots, nil)
		numByes--
	}
	for i := range participants {
		p := participants[i]
		slots = append(slots, &p)
	}
	for i := 0; i < numByes; i++ {
		slots = append(slots, nil)
	}

	matches := make([]Match, 0, size-1)

	// Round 1: pair consecutive slots. A match with at least one filled slot
	// is already playable; a double bye stays pending.
	for i := 0; i < len(slots); i += 2 {
		num := i/2 + 1
		m := Match{
			ID:          matchID(side, 1, num),
			Round:       1,
			MatchNumber: num,
			Player1:     slots[i],
			Player2:     slots[i+1],
			Status:      MatchPending,
			Bracket:     side,
		}
		if m.Player1 != nil || m.Player2 != nil {
			m.Status = MatchInProgress
		}
		matches = append(matches, m)
	}

	// Placeholder rounds down to the final.
	round := 2
	for count := size / 4; count >= 1; count /= 2 {
		for num := 1; num <= count; num++ {
			matches = append(matches, Match{
				ID:          matchID(side, round, num),
				Round:       round,
				MatchNumber: num,
				Status:      MatchPending,
				Bracket:     side,
			})
		}
		round++
	}

	return matches, nil
}
