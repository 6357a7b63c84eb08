/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package render

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Seednode/timeline/games/timeline"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func activeState() timeline.State {
	all := timeline.Events()
	current := all[4]
	return timeline.State{
		Phase:     timeline.PhaseRoundActive,
		Displayed: []timeline.Event{all[0], all[1], all[2], all[3]},
		Current:   &current,
		Selected:  timeline.NoPosition,
		Round:     1,
	}
}

// TestSlotLabel pins the button captions around a four event timeline.
func TestSlotLabel(t *testing.T) {
	want := []string{"Before 1", "Before 2", "Before 3", "Before 4", "After 4"}
	for pos, label := range want {
		if got := SlotLabel(pos, 4); got != label {
			t.Fatalf("SlotLabel(%d, 4) = %q, want %q", pos, got, label)
		}
	}
}

// TestBoardActiveRound checks the markup for a round waiting on a selection.
func TestBoardActiveRound(t *testing.T) {
	html, err := RenderBoard(activeState())
	if err != nil {
		t.Fatalf("RenderBoard returned error: %v", err)
	}
	doc := parse(t, html)

	if got := doc.Find("p.status").Text(); got != "Round: 1 | Score: 0" {
		t.Fatalf("unexpected status %q", got)
	}
	if n := doc.Find("li.event").Length(); n != 4 {
		t.Fatalf("expected 4 timeline rows, got %d", n)
	}
	if got := doc.Find("li.event").First().Text(); got != "1914: World War I begins" {
		t.Fatalf("unexpected first row %q", got)
	}
	if n := doc.Find(`button[data-action="select"]`).Length(); n != 5 {
		t.Fatalf("expected 5 slot buttons, got %d", n)
	}
	if n := doc.Find("li.placeholder").Length(); n != 0 {
		t.Fatalf("expected no placeholder without a selection, got %d", n)
	}
	if got := doc.Find(".hidden-event .description").Text(); got != "First atomic bomb dropped on Hiroshima" {
		t.Fatalf("unexpected current event %q", got)
	}
	if strings.Contains(doc.Find(".hidden-event").Text(), "1945") {
		t.Fatal("expected the year of the current event to stay hidden")
	}
	if doc.Find(`button[data-action="submit"]`).Length() != 1 {
		t.Fatal("expected a submit button")
	}
	if doc.Find(".feedback").Length() != 0 {
		t.Fatal("expected no feedback line")
	}
}

// TestBoardSelectedSlot checks the placeholder and the highlighted button.
func TestBoardSelectedSlot(t *testing.T) {
	s := activeState()
	s.Selected = 2

	doc := parse(t, mustRender(t, s))

	rows := doc.Find("ol.events li")
	if rows.Length() != 5 {
		t.Fatalf("expected 5 rows including the placeholder, got %d", rows.Length())
	}
	if !rows.Eq(2).HasClass("placeholder") {
		t.Fatalf("expected placeholder at index 2, got %q", rows.Eq(2).Text())
	}
	selected := doc.Find("button.slot.selected")
	if selected.Length() != 1 {
		t.Fatalf("expected one selected slot, got %d", selected.Length())
	}
	if pos, _ := selected.Attr("data-position"); pos != "2" {
		t.Fatalf("expected selected position 2, got %q", pos)
	}

	s.Selected = 4
	doc = parse(t, mustRender(t, s))
	if !doc.Find("ol.events li").Last().HasClass("placeholder") {
		t.Fatal("expected placeholder after the last event")
	}
}

// TestBoardFeedback checks the styling of correct and incorrect results.
func TestBoardFeedback(t *testing.T) {
	s := activeState()
	s, _ = timeline.Select(s, 4)
	s, err := timeline.Submit(s)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	doc := parse(t, mustRender(t, s))
	fb := doc.Find(".feedback")
	if !fb.HasClass("correct") {
		t.Fatalf("expected correct styling, got %q", fb.AttrOr("class", ""))
	}
	if !strings.HasPrefix(fb.Text(), "Correct!") {
		t.Fatalf("unexpected feedback %q", fb.Text())
	}

	empty, _ := timeline.Submit(activeState())
	doc = parse(t, mustRender(t, empty))
	if !doc.Find(".feedback").HasClass("incorrect") {
		t.Fatal("expected validation message styled as incorrect")
	}
}

// TestBoardGameOver checks the final panel.
func TestBoardGameOver(t *testing.T) {
	s := timeline.State{Phase: timeline.PhaseGameOver, Score: 6, Round: 6, Selected: timeline.NoPosition}

	doc := parse(t, mustRender(t, s))

	if got := doc.Find(".final-score").Text(); got != "Your final score: 6 out of 10" {
		t.Fatalf("unexpected final score %q", got)
	}
	if doc.Find(`button[data-action="play-again"]`).Length() != 1 {
		t.Fatal("expected a play again button")
	}
	if doc.Find(`button[data-action="submit"]`).Length() != 0 {
		t.Fatal("expected no submit button after game over")
	}
}

// TestBoardEscapesDescriptions ensures event text cannot inject markup.
func TestBoardEscapesDescriptions(t *testing.T) {
	current := timeline.Event{ID: 99, Description: `<script>alert("x")</script>`, Year: 2000}
	s := activeState()
	s.Current = &current

	html := mustRender(t, s)
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected escaped description, got %s", html)
	}
}

// TestPages checks the landing and game documents.
func TestPages(t *testing.T) {
	site := Site{Prefix: "/tl"}

	var sb strings.Builder
	if err := Landing(site).Render(context.Background(), &sb); err != nil {
		t.Fatalf("Landing returned error: %v", err)
	}
	doc := parse(t, sb.String())
	if href, _ := doc.Find("a#play").Attr("href"); href != "/tl/game" {
		t.Fatalf("expected play link /tl/game, got %q", href)
	}
	if src, _ := doc.Find("figure.share img").Attr("src"); src != "/tl/qr" {
		t.Fatalf("expected qr image /tl/qr, got %q", src)
	}

	sb.Reset()
	if err := GameShell(site).Render(context.Background(), &sb); err != nil {
		t.Fatalf("GameShell returned error: %v", err)
	}
	doc = parse(t, sb.String())
	if doc.Find("#root").Length() != 1 {
		t.Fatal("expected a #root element")
	}
	if wasm, _ := doc.Find("script[data-wasm]").Attr("data-wasm"); wasm != "/tl/assets/timeline/timeline.wasm" {
		t.Fatalf("unexpected wasm url %q", wasm)
	}
	if doc.Find(`link[rel="stylesheet"]`).Length() != 1 {
		t.Fatal("expected the stylesheet link")
	}
}

func mustRender(t *testing.T, s timeline.State) string {
	t.Helper()

	html, err := RenderBoard(s)
	if err != nil {
		t.Fatalf("RenderBoard returned error: %v", err)
	}
	return html
}

// TestErrorPage checks the panic page markup and escaping.
func TestErrorPage(t *testing.T) {
	var sb strings.Builder
	if err := ErrorPage(Site{Prefix: "/tl"}, "Server Error", `<b>"oops"</b>`).Render(context.Background(), &sb); err != nil {
		t.Fatalf("ErrorPage returned error: %v", err)
	}

	doc := parse(t, sb.String())
	if got := doc.Find("main h1").Text(); got != "Server Error" {
		t.Fatalf("unexpected heading %q", got)
	}
	if got := doc.Find("title").Text(); got != "Server Error" {
		t.Fatalf("unexpected title %q", got)
	}
	if doc.Find("main b").Length() != 0 {
		t.Fatal("expected the message to be escaped")
	}
	if href, _ := doc.Find("a.button").Attr("href"); href != "/tl/" {
		t.Fatalf("expected home link /tl/, got %q", href)
	}
}

// TestComponentsStopOnCancelledContext ensures nothing is written once the
// request context is gone.
func TestComponentsStopOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	if err := BoardComponent(NewBoard(activeState())).Render(ctx, &sb); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if sb.Len() != 0 {
		t.Fatalf("expected no output, got %q", sb.String())
	}
}
