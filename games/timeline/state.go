/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package timeline implements the "place the event on the timeline" game.
//
// A game is a State value moved forward by pure transition functions:
//
//	Initializing -> RoundActive <-> Feedback -> RoundActive | GameOver
//
// Nothing in this package renders markup or touches the clock directly;
// Session adds the delayed auto-advance on top of the transitions.
package timeline

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Phase is the lifecycle stage of a game.
type Phase string

const (
	PhaseInitializing Phase = "initializing"
	PhaseRoundActive  Phase = "round_active"
	PhaseFeedback     Phase = "feedback"
	PhaseGameOver     Phase = "game_over"
)

// NoPosition marks an absent slot selection.
const NoPosition = -1

// initialDisplayed is how many events the timeline is seeded with.
const initialDisplayed = 4

const noPositionMessage = "Please select a position for the event first!"

var (
	// ErrNoPosition is returned by Submit when no slot has been selected.
	ErrNoPosition = errors.New("no position selected")

	// ErrInvalidPosition indicates a slot outside 0..len(Displayed).
	ErrInvalidPosition = errors.New("position out of range")

	// ErrNotActive indicates an action that the current phase does not accept.
	ErrNotActive = errors.New("action not allowed in current phase")
)

// State is the round state of one game.
type State struct {
	Phase     Phase   `json:"phase"`
	Displayed []Event `json:"displayed"`
	Current   *Event  `json:"current,omitempty"`
	Selected  int     `json:"selected"`
	Score     int     `json:"score"`
	Round     int     `json:"round"`
	Feedback  string  `json:"feedback,omitempty"`
	Correct   bool    `json:"correct"`
}

// New returns an empty game waiting for its first round.
func New() State {
	return State{
		Phase:    PhaseInitializing,
		Selected: NoPosition,
	}
}

// GameOver reports whether every event has been placed.
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Slots is the number of gaps a new event can be inserted into.
func (s State) Slots() int {
	return len(s.Displayed) + 1
}

// HasSelection reports whether a slot is currently selected.
func (s State) HasSelection() bool {
	return s.Selected != NoPosition
}

// Pool returns the events that are neither displayed nor current.
func (s State) Pool() []Event {
	pool := make([]Event, 0, TotalEvents)
	for _, e := range events {
		if containsEvent(s.Displayed, e.ID) {
			continue
		}
		if s.Current != nil && s.Current.ID == e.ID {
			continue
		}
		pool = append(pool, e)
	}
	return pool
}

func (s State) clone() State {
	s.Displayed = slices.Clone(s.Displayed)
	if s.Current != nil {
		c := *s.Current
		s.Current = &c
	}
	return s
}

// Start begins the next round, or ends the game when the pool is empty.
//
// While fewer than four events are displayed the timeline is topped up to
// four first and the current event is drawn from what is left of the whole
// dataset; afterwards the current event is drawn from the pool directly.
func Start(s State, rng Rand) State {
	next := s.clone()
	next.Feedback = ""
	next.Correct = false
	next.Selected = NoPosition

	pool := next.Pool()
	if len(pool) == 0 {
		next.Current = nil
		next.Phase = PhaseGameOver
		return next
	}

	if len(next.Displayed) < initialDisplayed {
		initial := slices.Clone(next.Displayed)

		available := make([]Event, 0, TotalEvents)
		for _, e := range events {
			if !containsEvent(initial, e.ID) {
				available = append(available, e)
			}
		}

		for len(initial) < initialDisplayed && len(available) > 1 {
			i := rng.Intn(len(available))
			initial = append(initial, available[i])
			available = slices.Delete(available, i, i+1)
		}

		sort.SliceStable(initial, func(i, j int) bool {
			return initial[i].Year < initial[j].Year
		})
		next.Displayed = initial

		pick := available[rng.Intn(len(available))]
		next.Current = &pick
	} else {
		pick := pool[rng.Intn(len(pool))]
		next.Current = &pick
	}

	next.Round++
	next.Phase = PhaseRoundActive

	return next
}

// Select marks slot pos as the user's candidate. Nothing else changes.
func Select(s State, pos int) (State, error) {
	if s.Phase != PhaseRoundActive {
		return s, ErrNotActive
	}
	if pos < 0 || pos > len(s.Displayed) {
		return s, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidPosition, pos, len(s.Displayed))
	}

	next := s.clone()
	next.Selected = pos

	return next, nil
}

// Submit resolves the round. The current event is always inserted at its
// sorted position; the score only moves if the selected slot was correct.
func Submit(s State) (State, error) {
	if s.Phase != PhaseRoundActive || s.Current == nil {
		return s, ErrNotActive
	}

	next := s.clone()

	if !next.HasSelection() {
		next.Feedback = noPositionMessage
		next.Correct = false
		return next, ErrNoPosition
	}

	ev := *next.Current
	correct := PlacementCorrect(next.Displayed, next.Selected, ev.Year)

	next.Displayed = InsertByYear(next.Displayed, ev)
	next.Correct = correct

	if correct {
		next.Score++
		next.Feedback = fmt.Sprintf("Correct! %s happened in %d.", ev.Description, ev.Year)
	} else {
		next.Feedback = fmt.Sprintf("Incorrect. %s happened in %d.", ev.Description, ev.Year)
	}

	next.Phase = PhaseFeedback

	return next, nil
}

// Advance leaves the feedback phase for the next round or game over.
func Advance(s State, rng Rand) (State, error) {
	if s.Phase != PhaseFeedback {
		return s, ErrNotActive
	}
	return Start(s, rng), nil
}

// Reset discards all round state and starts a new game.
func Reset(rng Rand) State {
	return Start(New(), rng)
}

// PlacementCorrect checks year against the boundary years around slot pos.
// It does not look at where the event ends up being inserted.
func PlacementCorrect(displayed []Event, pos, year int) bool {
	n := len(displayed)
	switch {
	case n == 0:
		return true
	case pos == 0:
		return year <= displayed[0].Year
	case pos == n:
		return year >= displayed[n-1].Year
	default:
		return displayed[pos-1].Year <= year && year <= displayed[pos].Year
	}
}

// InsertByYear inserts ev before the first event with a strictly greater
// year, or at the end when there is none.
func InsertByYear(displayed []Event, ev Event) []Event {
	i := slices.IndexFunc(displayed, func(e Event) bool {
		return e.Year > ev.Year
	})
	if i < 0 {
		i = len(displayed)
	}
	return slices.Insert(slices.Clone(displayed), i, ev)
}

// FinalScoreText is the summary shown once the game is over.
func FinalScoreText(s State) string {
	return fmt.Sprintf("Your final score: %d out of %d", s.Score, TotalEvents)
}
