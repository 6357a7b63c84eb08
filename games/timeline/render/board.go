/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/Seednode/timeline/games/timeline"
)

// Item is one row of the drawn timeline. Placeholder rows mark the selected
// slot and show the hidden event without its year.
type Item struct {
	Year        int
	Description string
	Placeholder bool
}

// Slot is a button for one insertion gap.
type Slot struct {
	Position int
	Label    string
	Selected bool
}

// Class is the class attribute of the slot button.
func (s Slot) Class() string {
	if s.Selected {
		return "slot selected"
	}
	return "slot"
}

// Board is the view model for the game root element.
type Board struct {
	Round      int
	Score      int
	Items      []Item
	Slots      []Slot
	Current    string
	HasCurrent bool
	Feedback   string
	Correct    bool
	GameOver   bool
	FinalScore string
}

// FeedbackClass styles the feedback line by result.
func (b Board) FeedbackClass() string {
	if b.Correct {
		return "feedback correct"
	}
	return "feedback incorrect"
}

// SlotLabel names gap pos on a timeline of n events.
func SlotLabel(pos, n int) string {
	switch {
	case pos == 0:
		return "Before 1"
	case pos == n:
		return fmt.Sprintf("After %d", n)
	default:
		return fmt.Sprintf("Before %d", pos+1)
	}
}

// NewBoard builds the view model for s.
func NewBoard(s timeline.State) Board {
	b := Board{
		Round:    s.Round,
		Score:    s.Score,
		Feedback: s.Feedback,
		Correct:  s.Correct,
		GameOver: s.GameOver(),
	}

	if b.GameOver {
		b.FinalScore = timeline.FinalScoreText(s)
		return b
	}

	if s.Current != nil {
		b.HasCurrent = true
		b.Current = s.Current.Description
	}

	placeholder := Item{Description: b.Current, Placeholder: true}
	for i, e := range s.Displayed {
		if b.HasCurrent && s.Selected == i {
			b.Items = append(b.Items, placeholder)
		}
		b.Items = append(b.Items, Item{Year: e.Year, Description: e.Description})
	}
	if b.HasCurrent && s.Selected == len(s.Displayed) {
		b.Items = append(b.Items, placeholder)
	}

	if b.HasCurrent {
		for pos := 0; pos < s.Slots(); pos++ {
			b.Slots = append(b.Slots, Slot{
				Position: pos,
				Label:    SlotLabel(pos, len(s.Displayed)),
				Selected: pos == s.Selected,
			})
		}
	}

	return b
}

// RenderBoard draws the board for s into a string.
func RenderBoard(s timeline.State) (string, error) {
	var sb strings.Builder
	if err := BoardComponent(NewBoard(s)).Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
