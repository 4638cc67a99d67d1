package ui

import (
	"testing"

	"github.com/vidyasagar/swb/internal/chrome"
)

func menuFixture() []chrome.MenuNode {
	return []chrome.MenuNode{
		{Title: "Go", URL: "https://go.dev"},
		{Title: "News", Items: []chrome.MenuNode{
			{Title: "Hacker News", URL: "https://news.ycombinator.com"},
			{Title: "Lobsters", URL: "https://lobste.rs"},
		}},
	}
}

func TestPickerOpenMenuFlattensGroups(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())

	if !p.IsActive() {
		t.Fatal("picker not active after OpenMenu")
	}
	if len(p.visible) != 4 {
		t.Fatalf("got %d rows, want 4 (leaf + header + 2 children)", len(p.visible))
	}
	if p.visible[1].Title != "News" || !p.visible[1].Group {
		t.Errorf("row 1 = %+v, want the News header", p.visible[1])
	}
}

func TestPickerCursorSkipsGroupHeaders(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())

	// Cursor starts on the first selectable row.
	sel, ok := p.Selected()
	if !ok || sel.Title != "Go" {
		t.Fatalf("initial selection = %+v, want Go", sel)
	}

	p.CursorDown()
	sel, ok = p.Selected()
	if !ok || sel.Title != "Hacker News" {
		t.Errorf("selection after down = %+v, want Hacker News (header skipped)", sel)
	}

	p.CursorUp()
	sel, ok = p.Selected()
	if !ok || sel.Title != "Go" {
		t.Errorf("selection after up = %+v, want Go", sel)
	}
}

func TestPickerCursorStopsAtEnds(t *testing.T) {
	p := NewPicker()
	p.OpenItems("History", []PickerItem{{Title: "only", URL: "u"}})

	p.CursorUp()
	p.CursorDown()
	p.CursorDown()
	sel, ok := p.Selected()
	if !ok || sel.Title != "only" {
		t.Errorf("selection = %+v, want the single row", sel)
	}
}

func TestPickerFilterMatchesTitleAndURL(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())

	p.filter.SetValue("lob")
	p.refilter()

	if len(p.visible) != 1 {
		t.Fatalf("got %d rows after filter, want 1", len(p.visible))
	}
	sel, ok := p.Selected()
	if !ok || sel.Title != "Lobsters" {
		t.Errorf("selection = %+v, want Lobsters", sel)
	}

	// URL text matches too.
	p.filter.SetValue("ycomb")
	p.refilter()
	if sel, ok := p.Selected(); !ok || sel.Title != "Hacker News" {
		t.Errorf("selection = %+v, want Hacker News via URL match", sel)
	}
}

func TestPickerFilterHidesHeaders(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())

	p.filter.SetValue("e")
	p.refilter()
	for _, row := range p.visible {
		if row.Group {
			t.Errorf("group header %q shown while filtering", row.Title)
		}
	}
}

func TestPickerEmptyFilterResultHasNoSelection(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())

	p.filter.SetValue("zzzzzz")
	p.refilter()
	if _, ok := p.Selected(); ok {
		t.Error("Selected() = ok with no matching rows")
	}
}

func TestPickerCloseResets(t *testing.T) {
	p := NewPicker()
	p.OpenMenu("Bookmarks", menuFixture())
	p.Close()

	if p.IsActive() {
		t.Error("picker still active after Close")
	}
	if _, ok := p.Selected(); ok {
		t.Error("Selected() = ok after Close")
	}
}
