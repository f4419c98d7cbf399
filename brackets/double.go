package brackets

// BuildDoubleElimination constructs a winner bracket (identical shape to
// single elimination), a loser bracket, and one grand final.
//
// The loser bracket follows the standard double-elimination progression:
// 2*winnerRounds-2 rounds, with round r holding
// bracketSize / 2^(floor((r+1)/2)+1) matches (minimum 1). All loser-bracket
// matches start as empty placeholders; FromMatchA/FromMatchB stay unset, so
// dropping losers into them is the caller's job.
func BuildDoubleElimination(participants []Participant) ([]Match, error) {
	matches, err := buildKnockout(participants, BracketWinner)
	if err != nil {
		return nil, err
	}

	size := bracketSize(len(participants))
	winnerRounds := 0
	for s := size; s > 1; s /= 2 {
		winnerRounds++
	}

	loserRounds := 2*winnerRounds - 2
	for r := 1; r <= loserRounds; r++ {
		count := size / (1 << ((r+1)/2 + 1))
		if count < 1 {
			count = 1
		}
		for num := 1; num <= count; num++ {
			matches = append(matches, Match{
				ID:          matchID(BracketLoser, r, num),
				Round:       r,
				MatchNumber: num,
				Status:      MatchPending,
				Bracket:     BracketLoser,
			})
		}
	}

	matches = append(matches, Match{
		ID:          matchID(BracketFinal, winnerRounds+1, 1),
		Round:       winnerRounds + 1,
		MatchNumber: 1,
		Status:      MatchPending,
		Bracket:     BracketFinal,
	})

	return matches, nil
}
