package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/swb/internal/theme"
)

// PageViewport wraps bubbles/viewport and shows a welcome screen until
// the first page paints.
type PageViewport struct {
	viewport   viewport.Model
	ready      bool
	contentSet bool
}

// NewPageViewport creates a viewport; dimensions arrive with the first
// window size message.
func NewPageViewport() PageViewport {
	return PageViewport{}
}

// SetSize updates the viewport dimensions.
func (pv *PageViewport) SetSize(width, height int) {
	if !pv.ready {
		pv.viewport = viewport.New(width, height)
		pv.viewport.MouseWheelEnabled = true
		pv.viewport.MouseWheelDelta = 3
		pv.ready = true
	} else {
		pv.viewport.Width = width
		pv.viewport.Height = height
	}
}

// SetContent replaces the displayed page and scrolls to the top.
func (pv *PageViewport) SetContent(content string) {
	if !pv.ready {
		return
	}
	pv.viewport.SetContent(content)
	pv.contentSet = true
	pv.viewport.GotoTop()
}

// Update forwards messages to the viewport (mouse wheel and friends).
func (pv *PageViewport) Update(msg tea.Msg) (*PageViewport, tea.Cmd) {
	if !pv.ready {
		return pv, nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// View renders the viewport.
func (pv *PageViewport) View() string {
	if !pv.ready {
		return "\n  Starting swb..."
	}
	if !pv.contentSet {
		return pv.renderWelcome()
	}
	return pv.viewport.View()
}

// ScrollInfo returns a string like "42%", "TOP" or "BOT".
func (pv *PageViewport) ScrollInfo() string {
	if !pv.ready {
		return "TOP"
	}
	pct := pv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// LineDown scrolls down n lines.
func (pv *PageViewport) LineDown(n int) {
	if pv.ready {
		pv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (pv *PageViewport) LineUp(n int) {
	if pv.ready {
		pv.viewport.LineUp(n)
	}
}

// HalfPageDown scrolls down half a page.
func (pv *PageViewport) HalfPageDown() {
	if pv.ready {
		pv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (pv *PageViewport) HalfPageUp() {
	if pv.ready {
		pv.viewport.HalfViewUp()
	}
}

// GotoTop scrolls to the top.
func (pv *PageViewport) GotoTop() {
	if pv.ready {
		pv.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (pv *PageViewport) GotoBottom() {
	if pv.ready {
		pv.viewport.GotoBottom()
	}
}

func (pv *PageViewport) renderWelcome() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("  swb"))
	sb.WriteString(dimStyle.Render("  —  a small web browser for the terminal"))
	sb.WriteString("\n\n")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"o", "Open URL"},
		{"f", "Follow link by number"},
		{"H / L", "Go back / forward"},
		{"r", "Reload page"},
		{"b", "Bookmarks"},
		{"Ctrl+h", "History"},
		{"j / k", "Scroll down / up"},
		{"g / G", "Top / bottom of page"},
		{"?", "Show all keybindings"},
		{"q", "Quit"},
	}
	for _, s := range shortcuts {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("    %-10s", s.key)))
		sb.WriteString(descStyle.Render(s.desc))
		sb.WriteString("\n")
	}

	return sb.String()
}
