/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package timeline

import (
	"errors"
	"sync"
	"time"
)

// FeedbackDelay is how long the result of a round stays up before the next
// round starts.
const FeedbackDelay = 2000 * time.Millisecond

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules on the wall clock.
type ClockScheduler struct{}

func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Session owns the state of one running game.
type Session struct {
	mu sync.Mutex

	state    State
	rng      Rand
	sched    Scheduler
	delay    time.Duration
	onChange func(State)

	pending    Timer
	generation uint64
	closed     bool

	// seq numbers state changes; drawMu orders onChange calls by it.
	seq    uint64
	drawMu sync.Mutex
	drawn  uint64
}

// NewSession creates a session and plays its first round. onChange, if not
// nil, is called after every state change, outside the session lock. Calls
// are serialized and a state older than one already delivered is dropped.
// onChange must not call back into the session.
func NewSession(rng Rand, sched Scheduler, onChange func(State)) *Session {
	if sched == nil {
		sched = ClockScheduler{}
	}

	s := &Session{
		state:    New(),
		rng:      rng,
		sched:    sched,
		delay:    FeedbackDelay,
		onChange: onChange,
	}

	s.state = Start(s.state, s.rng)

	return s
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

// Dispatch applies a user action. A successful submit schedules the
// advance to the next round; play-again cancels any pending advance.
func (s *Session) Dispatch(a Action) (State, error) {
	s.mu.Lock()

	if s.closed {
		st := s.state.clone()
		s.mu.Unlock()
		return st, ErrNotActive
	}

	if a.Kind == ActionAdvance {
		s.mu.Unlock()
		return s.State(), ErrNotActive
	}

	next, err := Reduce(s.state, a, s.rng)
	if err != nil && !errors.Is(err, ErrNoPosition) {
		st := s.state.clone()
		s.mu.Unlock()
		return st, err
	}

	s.state = next
	s.seq++
	seq := s.seq

	switch a.Kind {
	case ActionSubmit:
		if err == nil {
			s.scheduleAdvanceLocked()
		}
	case ActionPlayAgain:
		s.cancelLocked()
	}

	st := s.state.clone()
	s.mu.Unlock()

	s.notify(st, seq)

	return st, err
}

// PlayAgain resets a finished game.
func (s *Session) PlayAgain() (State, error) {
	return s.Dispatch(Action{Kind: ActionPlayAgain, Position: NoPosition})
}

// Close cancels any pending advance. Later actions fail with ErrNotActive.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.closed = true
}

// Hide is called when the page goes out of view. A discarded page closes
// the session. A page kept for back/forward navigation keeps playing when it
// is shown again, including any pending advance.
func (s *Session) Hide(discarded bool) {
	if discarded {
		s.Close()
	}
}

func (s *Session) scheduleAdvanceLocked() {
	s.cancelLocked()

	gen := s.generation
	s.pending = s.sched.AfterFunc(s.delay, func() {
		s.advance(gen)
	})
}

func (s *Session) cancelLocked() {
	s.generation++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) advance(gen uint64) {
	s.mu.Lock()

	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.pending = nil

	next, err := Advance(s.state, s.rng)
	if err != nil {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.seq++
	seq := s.seq

	st := s.state.clone()
	s.mu.Unlock()

	s.notify(st, seq)
}

func (s *Session) notify(st State, seq uint64) {
	if s.onChange == nil {
		return
	}

	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	if seq <= s.drawn {
		return
	}
	s.drawn = seq

	s.onChange(st)
}
