/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package timeline

import (
	"fmt"
	"strconv"
)

// ActionKind names a user or timer event. The string values double as the
// data-action attributes used by the board markup.
type ActionKind string

const (
	ActionStart     ActionKind = "start"
	ActionSelect    ActionKind = "select"
	ActionSubmit    ActionKind = "submit"
	ActionAdvance   ActionKind = "advance"
	ActionPlayAgain ActionKind = "play-again"
)

// Action is one input to Reduce. Position is only read for ActionSelect.
type Action struct {
	Kind     ActionKind
	Position int
}

// ParseAction builds an Action from the attribute values of a clicked element.
func ParseAction(kind, position string) (Action, error) {
	switch k := ActionKind(kind); k {
	case ActionSelect:
		pos, err := strconv.Atoi(position)
		if err != nil {
			return Action{}, fmt.Errorf("parse position %q: %w", position, err)
		}
		return Action{Kind: k, Position: pos}, nil
	case ActionSubmit, ActionPlayAgain:
		return Action{Kind: k, Position: NoPosition}, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", kind)
	}
}

// Reduce applies a to s. On error the returned state is s unchanged, except
// for ErrNoPosition, which carries the validation message in Feedback.
func Reduce(s State, a Action, rng Rand) (State, error) {
	switch a.Kind {
	case ActionStart:
		if s.Phase != PhaseInitializing {
			return s, ErrNotActive
		}
		return Start(s, rng), nil
	case ActionSelect:
		return Select(s, a.Position)
	case ActionSubmit:
		return Submit(s)
	case ActionAdvance:
		return Advance(s, rng)
	case ActionPlayAgain:
		if s.Phase != PhaseGameOver {
			return s, ErrNotActive
		}
		return Reset(rng), nil
	default:
		return s, fmt.Errorf("unknown action %q", a.Kind)
	}
}
