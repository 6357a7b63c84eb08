/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package timeline

// Event is one entry of the fixed dataset.
type Event struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

// Ids 9 and 10 share a year; insertion keeps them in arrival order.
var events = [...]Event{
	{ID: 1, Description: "World War I begins", Year: 1914},
	{ID: 2, Description: "Russian Revolution", Year: 1917},
	{ID: 3, Description: "Wall Street Crash", Year: 1929},
	{ID: 4, Description: "World War II begins", Year: 1939},
	{ID: 5, Description: "First atomic bomb dropped on Hiroshima", Year: 1945},
	{ID: 6, Description: "NASA founded", Year: 1958},
	{ID: 7, Description: "First human lands on the moon", Year: 1969},
	{ID: 8, Description: "Fall of the Berlin Wall", Year: 1989},
	{ID: 9, Description: "World Wide Web invented", Year: 1991},
	{ID: 10, Description: "Dissolution of the Soviet Union", Year: 1991},
}

// Events returns a copy of the dataset in id order.
func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events[:])
	return out
}

// TotalEvents is the size of the dataset.
const TotalEvents = len(events)

func containsEvent(list []Event, id int) bool {
	for _, e := range list {
		if e.ID == id {
			return true
		}
	}
	return false
}
