package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/swb/internal/theme"
)

// StatusBar shows mode, page info and transient messages at the bottom
// of the screen.
type StatusBar struct {
	mode       string
	title      string
	message    string
	scrollInfo string
	linkCount  int
	loading    bool
	width      int
}

// NewStatusBar creates a status bar in normal mode.
func NewStatusBar() StatusBar {
	return StatusBar{mode: "NORMAL"}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the mode indicator (NORMAL, INSERT, FOLLOW, ...).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetTitle sets the displayed page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetMessage sets a transient message shown instead of the title.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// SetLoading toggles the loading indicator.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetScrollInfo sets the scroll position string ("42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetLinkCount sets the number of followable links on the page.
func (s *StatusBar) SetLinkCount(n int) {
	s.linkCount = n
}

// View renders the bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeColor := t.Primary
	switch s.mode {
	case "INSERT":
		modeColor = t.Success
	case "FOLLOW":
		modeColor = t.Link
	case "BOOKMARKS", "HISTORY":
		modeColor = t.Secondary
	case "LOGIN":
		modeColor = t.Accent
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background).
		Background(modeColor).
		Render(s.mode)

	var left string
	switch {
	case s.loading:
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1).
			Render("Loading...")
	case s.message != "":
		left = lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.message)
	case s.title != "":
		left = lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.title)
	}

	var right string
	if s.linkCount > 0 {
		right = lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			Padding(0, 1).
			Render(fmt.Sprintf("%d links", s.linkCount))
	}
	right += lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Background(t.Surface).
		Padding(0, 1).
		Render(s.scrollInfo)

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Render(mode + left + spacer + right)
}
