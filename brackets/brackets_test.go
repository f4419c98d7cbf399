package brackets

import (
	"fmt"
	"testing"
)

func makeParticipants(names ...string) []Participant {
	ps := make([]Participant, 0, len(names))
	for i, name := range names {
		ps = append(ps, Participant{
			UID:           fmt.Sprintf("u%d", i+1),
			CharacterID:   fmt.Sprintf("c%d", i+1),
			CharacterName: name,
			Class:         "warrior",
		})
	}
	return ps
}

func TestSingleEliminationMatchCount(t *testing.T) {
	tests := []struct {
		n           int
		wantMatches int
		wantRounds  int
	}{
		{2, 1, 1},
		{3, 3, 2},
		{4, 3, 2},
		{5, 7, 3},
		{6, 7, 3},
		{7, 7, 3},
		{8, 7, 3},
		{9, 15, 4},
		{16, 15, 4},
	}

	for _, tt := range tests {
		names := make([]string, tt.n)
		for i := range names {
			names[i] = fmt.Sprintf("p%d", i+1)
		}
		matches, err := BuildSingleElimination(makeParticipants(names...))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", tt.n, err)
		}
		if len(matches) != tt.wantMatches {
			t.Errorf("n=%d: got %d matches, want %d", tt.n, len(matches), tt.wantMatches)
		}
		maxRound := 0
		for _, m := range matches {
			if m.Round > maxRound {
				maxRound = m.Round
			}
		}
		if maxRound != tt.wantRounds {
			t.Errorf("n=%d: got %d rounds, want %d", tt.n, maxRound, tt.wantRounds)
		}
	}
}

func TestSingleEliminationTooFewParticipants(t *testing.T) {
	if _, err := BuildSingleElimination(nil); err != ErrNotEnoughParticipants {
		t.Errorf("nil participants: got %v, want ErrNotEnoughParticipants", err)
	}
	if _, err := BuildSingleElimination(makeParticipants("solo")); err != ErrNotEnoughParticipants {
		t.Errorf("one participant: got %v, want ErrNotEnoughParticipants", err)
	}
}

func TestSingleEliminationEveryParticipantSeededOnce(t *testing.T) {
	participants := makeParticipants("A", "B", "C", "D", "E", "F")
	matches, err := BuildSingleElimination(participants)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]int{}
	for _, m := range matches {
		if m.Round != 1 {
			continue
		}
		if m.Player1 != nil {
			seen[m.Player1.UID]++
		}
		if m.Player2 != nil {
			seen[m.Player2.UID]++
		}
	}

	for _, p := range participants {
		if seen[p.UID] != 1 {
			t.Errorf("participant %s seeded %d times in round 1, want 1", p.CharacterName, seen[p.UID])
		}
	}
}

func TestSingleEliminationFiveParticipants(t *testing.T) {
	// 5 entrants: bracket of 8, 3 byes, one of them leading.
	matches, err := BuildSingleElimination(makeParticipants("A", "B", "C", "D", "E"))
	if err != nil {
		t.Fatal(err)
	}

	var round1 []Match
	for _, m := range matches {
		if m.Round == 1 {
			round1 = append(round1, m)
		}
	}
	if len(round1) != 4 {
		t.Fatalf("got %d round-1 matches, want 4", len(round1))
	}

	// Leading bye: the first match has an empty player1 slot.
	if round1[0].Player1 != nil {
		t.Errorf("first slot should be a bye, got %v", round1[0].Player1)
	}
	if round1[0].Player2 == nil || round1[0].Player2.CharacterName != "A" {
		t.Errorf("first match player2 should be A")
	}

	fullyBye := 0
	for _, m := range round1 {
		switch {
		case m.Player1 == nil && m.Player2 == nil:
			fullyBye++
			if m.Status != MatchPending {
				t.Errorf("double-bye match %s should be pending, got %s", m.ID, m.Status)
			}
		default:
			if m.Status != MatchInProgress {
				t.Errorf("match %s with a player should be in_progress, got %s", m.ID, m.Status)
			}
		}
	}
	if fullyBye != 1 {
		t.Errorf("got %d fully-bye matches, want exactly 1", fullyBye)
	}

	// Later rounds are placeholders.
	for _, m := range matches {
		if m.Round > 1 && (m.Player1 != nil || m.Player2 != nil || m.Status != MatchPending) {
			t.Errorf("match %s in round %d should be an empty pending placeholder", m.ID, m.Round)
		}
	}
}

func TestDoubleEliminationShape(t *testing.T) {
	tests := []struct {
		n          int
		wantWinner int
		wantLoser  int
	}{
		// bracket of 8: winner 7, loser rounds sized 2,2,1,1
		{8, 7, 6},
		{5, 7, 6},
		// bracket of 4: winner 3, loser rounds sized 1,1
		{4, 3, 2},
		// bracket of 16: winner 15, loser rounds sized 4,4,2,2,1,1
		{16, 15, 14},
	}

	for _, tt := range tests {
		names := make([]string, tt.n)
		for i := range names {
			names[i] = fmt.Sprintf("p%d", i+1)
		}
		matches, err := BuildDoubleElimination(makeParticipants(names...))
		if err != nil {
			t.Fatalf("n=%d: %v", tt.n, err)
		}

		var winner, loser, final int
		for _, m := range matches {
			switch m.Bracket {
			case BracketWinner:
				winner++
			case BracketLoser:
				loser++
				if m.Player1 != nil || m.Player2 != nil {
					t.Errorf("n=%d: loser-bracket match %s should start empty", tt.n, m.ID)
				}
				if m.FromMatchA != "" || m.FromMatchB != "" {
					t.Errorf("n=%d: loser-bracket source slots should stay unset", tt.n)
				}
			case BracketFinal:
				final++
			}
		}

		if winner != tt.wantWinner {
			t.Errorf("n=%d: got %d winner-bracket matches, want %d", tt.n, winner, tt.wantWinner)
		}
		if loser != tt.wantLoser {
			t.Errorf("n=%d: got %d loser-bracket matches, want %d", tt.n, loser, tt.wantLoser)
		}
		if final != 1 {
			t.Errorf("n=%d: got %d finals, want 1", tt.n, final)
		}
	}
}

func TestAdvanceThroughBracket(t *testing.T) {
	participants := makeParticipants("A", "B", "C", "D")
	matches, err := BuildSingleElimination(participants)
	if err != nil {
		t.Fatal(err)
	}

	a, d := participants[0], participants[3]

	if err := Advance(matches, "r1-m1", a); err != nil {
		t.Fatalf("advance r1-m1: %v", err)
	}
	final := matches[2]
	if final.ID != "r2-m1" {
		t.Fatalf("unexpected match layout: %v", final.ID)
	}
	if final.Player1 == nil || final.Player1.UID != a.UID {
		t.Errorf("odd match number should land in player1 of the next match")
	}
	if final.Status != MatchInProgress {
		t.Errorf("downstream match should be in_progress, got %s", final.Status)
	}

	if err := Advance(matches, "r1-m2", d); err != nil {
		t.Fatalf("advance r1-m2: %v", err)
	}
	if matches[2].Player2 == nil || matches[2].Player2.UID != d.UID {
		t.Errorf("even match number should land in player2 of the next match")
	}

	if err := Advance(matches, "r2-m1", a); err != nil {
		t.Fatalf("advance final: %v", err)
	}
	if got := ComputeStatus(matches); got != StatusCompleted {
		t.Errorf("status after final = %s, want completed", got)
	}
	champion := Champion(matches)
	if champion == nil || champion.UID != a.UID {
		t.Errorf("champion = %v, want A", champion)
	}
}

func TestAdvanceFinalTouchesOnlyThatMatch(t *testing.T) {
	participants := makeParticipants("A", "B", "C", "D")
	matches, err := BuildSingleElimination(participants)
	if err != nil {
		t.Fatal(err)
	}
	a, c := participants[0], participants[2]
	if err := Advance(matches, "r1-m1", a); err != nil {
		t.Fatal(err)
	}
	if err := Advance(matches, "r1-m2", c); err != nil {
		t.Fatal(err)
	}

	before := make([]Match, len(matches))
	copy(before, matches)

	if err := Advance(matches, "r2-m1", c); err != nil {
		t.Fatalf("advance final: %v", err)
	}

	for i := range matches {
		if matches[i].ID == "r2-m1" {
			if matches[i].Status != MatchCompleted || matches[i].Winner == nil || matches[i].Winner.UID != c.UID {
				t.Errorf("final should be completed with winner C")
			}
			continue
		}
		if matches[i].Status != before[i].Status || matches[i].Winner != before[i].Winner {
			t.Errorf("match %s changed when only the final was advanced", matches[i].ID)
		}
	}
}

func TestAdvanceValidation(t *testing.T) {
	participants := makeParticipants("A", "B")
	matches, _ := BuildSingleElimination(participants)

	stranger := Participant{UID: "ghost", CharacterName: "Ghost"}
	if err := Advance(matches, "r1-m1", stranger); err == nil {
		t.Error("expected error when the winner is not a player of the match")
	}
	if err := Advance(matches, "no-such-match", participants[0]); err != ErrMatchNotFound {
		t.Errorf("got %v, want ErrMatchNotFound", err)
	}

	if err := Advance(matches, "r1-m1", participants[0]); err != nil {
		t.Fatal(err)
	}
	if err := Advance(matches, "r1-m1", participants[1]); err == nil {
		t.Error("expected error when re-reporting a completed match")
	}
}

func TestDoubleEliminationFinalFedByBothSides(t *testing.T) {
	participants := makeParticipants("A", "B", "C", "D")
	matches, err := BuildDoubleElimination(participants)
	if err != nil {
		t.Fatal(err)
	}

	a, c := participants[0], participants[2]
	if err := Advance(matches, "r1-m1", a); err != nil {
		t.Fatal(err)
	}
	if err := Advance(matches, "r1-m2", c); err != nil {
		t.Fatal(err)
	}
	// Winner-bracket final: its champion goes to the grand final's player1.
	if err := Advance(matches, "r2-m1", a); err != nil {
		t.Fatal(err)
	}

	final := findByID(matches, "final")
	if final == nil {
		t.Fatal("no grand final generated")
	}
	if final.Player1 == nil || final.Player1.UID != a.UID {
		t.Errorf("winner-bracket champion should seed the grand final's player1")
	}
	if final.Status != MatchInProgress {
		t.Errorf("grand final should be in_progress once seeded, got %s", final.Status)
	}
}

func TestComputeStatus(t *testing.T) {
	if got := ComputeStatus(nil); got != StatusRegistration {
		t.Errorf("empty match list = %s, want registration", got)
	}

	matches, _ := BuildSingleElimination(makeParticipants("A", "B"))
	if got := ComputeStatus(matches); got != StatusInProgress {
		t.Errorf("fresh bracket = %s, want in_progress", got)
	}
}
