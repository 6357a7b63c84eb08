/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package render builds the HTML for the landing page, the game document and
// the in-page game board. It holds no game rules; the board is drawn from a
// Board view model built from a timeline.State.
package render

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

// Site carries the values every document needs.
type Site struct {
	Prefix string
}

func (s Site) url(path string) string {
	return s.Prefix + path
}
