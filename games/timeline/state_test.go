/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package timeline

import (
	"errors"
	"slices"
	"testing"
)

// scriptedRand replays vals in order, reduced modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func years(list []Event) []int {
	out := make([]int, len(list))
	for i, e := range list {
		out[i] = e.Year
	}
	return out
}

func assertSorted(t *testing.T, list []Event) {
	t.Helper()
	if !slices.IsSortedFunc(list, func(a, b Event) int { return a.Year - b.Year }) {
		t.Fatalf("expected displayed events sorted by year, got %v", years(list))
	}
}

// worldWarState is the timeline from the placement scenarios.
func worldWarState(current Event) State {
	all := Events()
	return State{
		Phase:     PhaseRoundActive,
		Displayed: []Event{all[0], all[1], all[2], all[3]},
		Current:   &current,
		Selected:  NoPosition,
		Round:     1,
	}
}

// TestStartSeedsFourSortedEvents ensures the first round displays four sorted events.
func TestStartSeedsFourSortedEvents(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := Start(New(), NewRand(seed))

		if s.Phase != PhaseRoundActive {
			t.Fatalf("seed %d: expected phase %q, got %q", seed, PhaseRoundActive, s.Phase)
		}
		if len(s.Displayed) != initialDisplayed {
			t.Fatalf("seed %d: expected %d displayed, got %d", seed, initialDisplayed, len(s.Displayed))
		}
		assertSorted(t, s.Displayed)
		if s.Current == nil {
			t.Fatalf("seed %d: expected a current event", seed)
		}
		if containsEvent(s.Displayed, s.Current.ID) {
			t.Fatalf("seed %d: current event %d is already displayed", seed, s.Current.ID)
		}
		if s.Round != 1 {
			t.Fatalf("seed %d: expected round 1, got %d", seed, s.Round)
		}
		if s.HasSelection() {
			t.Fatalf("seed %d: expected no selection, got %d", seed, s.Selected)
		}
	}
}

// TestStartUsesDatasetOrderWithZeroRand pins the sampling order of the first round.
func TestStartUsesDatasetOrderWithZeroRand(t *testing.T) {
	s := Start(New(), &scriptedRand{})

	want := []int{1914, 1917, 1929, 1939}
	if got := years(s.Displayed); !slices.Equal(got, want) {
		t.Fatalf("expected displayed %v, got %v", want, got)
	}
	if s.Current == nil || s.Current.ID != 5 {
		t.Fatalf("expected current event 5, got %+v", s.Current)
	}
}

// TestStartLaterRoundsDrawFromPool ensures rounds after the first pick only undisplayed events.
func TestStartLaterRoundsDrawFromPool(t *testing.T) {
	all := Events()
	resolved := all[4]
	s := State{
		Phase:     PhaseFeedback,
		Displayed: []Event{all[0], all[1], all[2], all[3], all[4]},
		Current:   &resolved,
		Selected:  2,
		Round:     1,
		Feedback:  "Correct!",
	}

	next := Start(s, &scriptedRand{vals: []int{0}})

	if next.Current == nil || next.Current.ID != 6 {
		t.Fatalf("expected current event 6, got %+v", next.Current)
	}
	if len(next.Displayed) != 5 {
		t.Fatalf("expected displayed events untouched, got %d", len(next.Displayed))
	}
	if next.Feedback != "" || next.HasSelection() {
		t.Fatalf("expected feedback and selection cleared, got %q / %d", next.Feedback, next.Selected)
	}
	if next.Round != 2 {
		t.Fatalf("expected round 2, got %d", next.Round)
	}
	if len(s.Displayed) != 5 || s.Round != 1 {
		t.Fatal("expected input state to be left unmodified")
	}
}

// TestSubmitCorrectAtEnd covers placing 1945 after 1939.
func TestSubmitCorrectAtEnd(t *testing.T) {
	all := Events()
	s := worldWarState(all[4])

	s, err := Select(s, 4)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	s, err = Submit(s)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !s.Correct || s.Score != 1 {
		t.Fatalf("expected correct placement and score 1, got correct=%v score=%d", s.Correct, s.Score)
	}
	want := "Correct! First atomic bomb dropped on Hiroshima happened in 1945."
	if s.Feedback != want {
		t.Fatalf("expected feedback %q, got %q", want, s.Feedback)
	}
	if got := years(s.Displayed); !slices.Equal(got, []int{1914, 1917, 1929, 1939, 1945}) {
		t.Fatalf("unexpected timeline %v", got)
	}
	if s.Phase != PhaseFeedback {
		t.Fatalf("expected phase %q, got %q", PhaseFeedback, s.Phase)
	}
}

// TestSubmitIncorrectStillInsertsSorted covers placing 1905 in the last slot.
func TestSubmitIncorrectStillInsertsSorted(t *testing.T) {
	s := worldWarState(Event{ID: 11, Description: "Norway becomes independent", Year: 1905})

	s, err := Select(s, 4)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	s, err = Submit(s)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if s.Correct || s.Score != 0 {
		t.Fatalf("expected incorrect placement and score 0, got correct=%v score=%d", s.Correct, s.Score)
	}
	want := "Incorrect. Norway becomes independent happened in 1905."
	if s.Feedback != want {
		t.Fatalf("expected feedback %q, got %q", want, s.Feedback)
	}
	if s.Displayed[0].Year != 1905 {
		t.Fatalf("expected 1905 inserted at the front, got %v", years(s.Displayed))
	}
	assertSorted(t, s.Displayed)
}

// TestSubmitWithoutSelection ensures the validation message is set and nothing else moves.
func TestSubmitWithoutSelection(t *testing.T) {
	s := worldWarState(Events()[4])

	next, err := Submit(s)
	if !errors.Is(err, ErrNoPosition) {
		t.Fatalf("expected ErrNoPosition, got %v", err)
	}
	if next.Feedback != "Please select a position for the event first!" {
		t.Fatalf("unexpected feedback %q", next.Feedback)
	}
	if next.Phase != PhaseRoundActive || next.Score != 0 || len(next.Displayed) != 4 {
		t.Fatalf("expected no state transition, got %+v", next)
	}
}

// TestSelectValidation covers out of range slots and inactive phases.
func TestSelectValidation(t *testing.T) {
	s := worldWarState(Events()[4])

	tests := []struct {
		name  string
		state State
		pos   int
		want  error
	}{
		{name: "negative", state: s, pos: -1, want: ErrInvalidPosition},
		{name: "past last slot", state: s, pos: 5, want: ErrInvalidPosition},
		{name: "first slot", state: s, pos: 0},
		{name: "last slot", state: s, pos: 4},
		{name: "during feedback", state: State{Phase: PhaseFeedback, Selected: 1}, pos: 0, want: ErrNotActive},
		{name: "after game over", state: State{Phase: PhaseGameOver, Selected: NoPosition}, pos: 0, want: ErrNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Select(tt.state, tt.pos)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				if next.Selected != tt.state.Selected {
					t.Fatalf("expected selection unchanged, got %d", next.Selected)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select returned error: %v", err)
			}
			if next.Selected != tt.pos {
				t.Fatalf("expected selection %d, got %d", tt.pos, next.Selected)
			}
		})
	}
}

// TestSubmitDuringFeedbackIsRejected ensures a resolved round cannot be submitted twice.
func TestSubmitDuringFeedbackIsRejected(t *testing.T) {
	s := worldWarState(Events()[4])
	s, _ = Select(s, 4)
	s, _ = Submit(s)

	again, err := Submit(s)
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
	if len(again.Displayed) != 5 || again.Score != 1 {
		t.Fatalf("expected no duplicate insertion, got %v score %d", years(again.Displayed), again.Score)
	}
}

// TestPlacementCorrect checks the boundary rules for every kind of slot.
func TestPlacementCorrect(t *testing.T) {
	displayed := []Event{{Year: 1914}, {Year: 1929}, {Year: 1991}}

	tests := []struct {
		name string
		pos  int
		year int
		want bool
	}{
		{name: "front before first", pos: 0, year: 1900, want: true},
		{name: "front equal first", pos: 0, year: 1914, want: true},
		{name: "front after first", pos: 0, year: 1915, want: false},
		{name: "end after last", pos: 3, year: 1999, want: true},
		{name: "end equal last", pos: 3, year: 1991, want: true},
		{name: "end before last", pos: 3, year: 1990, want: false},
		{name: "interior inside", pos: 1, year: 1920, want: true},
		{name: "interior on lower bound", pos: 2, year: 1929, want: true},
		{name: "interior on upper bound", pos: 2, year: 1991, want: true},
		{name: "interior below", pos: 2, year: 1920, want: false},
		{name: "interior above", pos: 1, year: 1945, want: false},
		{name: "empty timeline", pos: 0, year: 1800, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := displayed
			if tt.name == "empty timeline" {
				list = nil
			}
			if got := PlacementCorrect(list, tt.pos, tt.year); got != tt.want {
				t.Fatalf("PlacementCorrect(%d, %d) = %v, want %v", tt.pos, tt.year, got, tt.want)
			}
		})
	}
}

// TestInsertByYearKeepsTiesInArrivalOrder covers the two 1991 events.
func TestInsertByYearKeepsTiesInArrivalOrder(t *testing.T) {
	all := Events()
	web, soviet := all[8], all[9]

	got := InsertByYear([]Event{all[7], web}, soviet)
	if ids := []int{got[0].ID, got[1].ID, got[2].ID}; !slices.Equal(ids, []int{8, 9, 10}) {
		t.Fatalf("expected ids [8 9 10], got %v", ids)
	}

	got = InsertByYear([]Event{all[7], soviet}, web)
	if ids := []int{got[0].ID, got[1].ID, got[2].ID}; !slices.Equal(ids, []int{8, 10, 9}) {
		t.Fatalf("expected ids [8 10 9], got %v", ids)
	}

	got = InsertByYear([]Event{web, soviet}, all[7])
	if got[0].ID != 8 {
		t.Fatalf("expected 1989 at the front, got %v", years(got))
	}
}

// playToEnd runs a full game, choosing slots from a second seeded source.
func playToEnd(t *testing.T, seed int64) (State, int) {
	t.Helper()

	rng := NewRand(seed)
	choices := NewRand(seed + 1000)

	s := Reset(rng)
	rounds := 0
	prevScore := 0

	for !s.GameOver() {
		if len(s.Displayed)+1 > TotalEvents {
			t.Fatalf("seed %d: round %d active with %d events displayed", seed, s.Round, len(s.Displayed))
		}

		var err error
		s, err = Select(s, choices.Intn(s.Slots()))
		if err != nil {
			t.Fatalf("seed %d: Select returned error: %v", seed, err)
		}
		s, err = Submit(s)
		if err != nil {
			t.Fatalf("seed %d: Submit returned error: %v", seed, err)
		}
		rounds++

		assertSorted(t, s.Displayed)
		if s.Score < prevScore {
			t.Fatalf("seed %d: score decreased from %d to %d", seed, prevScore, s.Score)
		}
		if s.Score > s.Round {
			t.Fatalf("seed %d: score %d exceeds round %d", seed, s.Score, s.Round)
		}
		prevScore = s.Score

		s, err = Advance(s, rng)
		if err != nil {
			t.Fatalf("seed %d: Advance returned error: %v", seed, err)
		}
	}

	return s, rounds
}

// TestGameEndsWhenPoolIsExhausted ensures game over coincides with all events displayed.
func TestGameEndsWhenPoolIsExhausted(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		s, rounds := playToEnd(t, seed)

		if len(s.Displayed) != TotalEvents {
			t.Fatalf("seed %d: expected %d displayed at game over, got %d", seed, TotalEvents, len(s.Displayed))
		}
		if len(s.Pool()) != 0 || s.Current != nil {
			t.Fatalf("seed %d: expected empty pool and no current event", seed)
		}
		if rounds != TotalEvents-initialDisplayed {
			t.Fatalf("seed %d: expected %d rounds, got %d", seed, TotalEvents-initialDisplayed, rounds)
		}
		if s.Round != rounds {
			t.Fatalf("seed %d: expected round counter %d, got %d", seed, rounds, s.Round)
		}
	}
}

// TestGameIsDeterministicForSeed ensures the 1991 tie-break is reproducible.
func TestGameIsDeterministicForSeed(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		first, _ := playToEnd(t, seed)
		second, _ := playToEnd(t, seed)

		if !slices.Equal(first.Displayed, second.Displayed) {
			t.Fatalf("seed %d: timelines differ: %v vs %v", seed, first.Displayed, second.Displayed)
		}
		last := first.Displayed[TotalEvents-2:]
		if last[0].Year != 1991 || last[1].Year != 1991 {
			t.Fatalf("seed %d: expected the 1991 pair last, got %v", seed, years(first.Displayed))
		}
	}
}

// TestAdvanceOnlyFromFeedback ensures timers firing late do not skip rounds.
func TestAdvanceOnlyFromFeedback(t *testing.T) {
	s := worldWarState(Events()[4])

	next, err := Advance(s, &scriptedRand{})
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
	if next.Round != s.Round {
		t.Fatalf("expected round unchanged, got %d", next.Round)
	}
}

// TestResetAfterGameOver ensures play again starts a fresh game.
func TestResetAfterGameOver(t *testing.T) {
	over, _ := playToEnd(t, 7)
	if !over.GameOver() {
		t.Fatal("expected game over")
	}

	s, err := Reduce(over, Action{Kind: ActionPlayAgain}, NewRand(8))
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}

	// The counter resets to zero and the first round of the new game is started.
	if s.Score != 0 || s.Round != 1 {
		t.Fatalf("expected score 0 and round 1, got %d and %d", s.Score, s.Round)
	}
	if len(s.Displayed) != initialDisplayed || s.Phase != PhaseRoundActive {
		t.Fatalf("expected a fresh %d event timeline, got %+v", initialDisplayed, s)
	}
	assertSorted(t, s.Displayed)
}

// TestFinalScoreText pins the game over summary.
func TestFinalScoreText(t *testing.T) {
	if got := FinalScoreText(State{Score: 4}); got != "Your final score: 4 out of 10" {
		t.Fatalf("unexpected summary %q", got)
	}
}
