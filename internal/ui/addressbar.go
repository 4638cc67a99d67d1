package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/swb/internal/theme"
)

// AddressBar is the URL input at the top of the window. It displays the
// current navigable URL and, when focused, accepts a destination. It
// never acts on the value itself; the app enqueues the navigation.
type AddressBar struct {
	input  textinput.Model
	active bool
	width  int
}

// NewAddressBar creates the address bar.
func NewAddressBar() AddressBar {
	ti := textinput.New()
	ti.Placeholder = "Enter URL..."
	ti.CharLimit = 2048
	ti.Width = 60
	return AddressBar{input: ti}
}

// SetWidth updates the bar width.
func (a *AddressBar) SetWidth(w int) {
	a.width = w
	a.input.Width = w - 8
}

// Focus activates the bar for input.
func (a *AddressBar) Focus() tea.Cmd {
	a.active = true
	return a.input.Focus()
}

// Blur deactivates the bar.
func (a *AddressBar) Blur() {
	a.active = false
	a.input.Blur()
}

// IsActive reports whether the bar is focused.
func (a *AddressBar) IsActive() bool {
	return a.active
}

// Value returns the current input text.
func (a *AddressBar) Value() string {
	return a.input.Value()
}

// SetText replaces the displayed URL without emitting anything.
func (a *AddressBar) SetText(url string) {
	a.input.SetValue(url)
}

// Reset clears the input.
func (a *AddressBar) Reset() {
	a.input.Reset()
}

// Update forwards messages to the text input while focused.
func (a *AddressBar) Update(msg tea.Msg) (*AddressBar, tea.Cmd) {
	if !a.active {
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the bar.
func (a *AddressBar) View() string {
	t := theme.Current

	borderColor := t.Border
	textColor := t.TextDim
	if a.active {
		borderColor = t.BorderFocus
		textColor = t.Text
	}

	barStyle := lipgloss.NewStyle().
		Foreground(textColor).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(a.width - 2)

	promptStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	return barStyle.Render(promptStyle.Render("»") + " " + a.input.View())
}
