package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/swb/internal/theme"
)

// Prompt is a one-line input at the bottom of the screen, used for
// follow-link entry.
type Prompt struct {
	input  textinput.Model
	active bool
	width  int
}

// NewPrompt creates an inactive prompt.
func NewPrompt() Prompt {
	ti := textinput.New()
	ti.CharLimit = 64
	return Prompt{input: ti}
}

// SetWidth sets the prompt width.
func (p *Prompt) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 4
}

// Open activates the prompt with the given leader and placeholder.
func (p *Prompt) Open(prompt, placeholder string) tea.Cmd {
	p.active = true
	p.input.Reset()
	p.input.Prompt = prompt
	p.input.Placeholder = placeholder
	return p.input.Focus()
}

// Close deactivates the prompt.
func (p *Prompt) Close() {
	p.active = false
	p.input.Blur()
	p.input.Reset()
}

// IsActive reports whether the prompt is open.
func (p *Prompt) IsActive() bool {
	return p.active
}

// Value returns the trimmed input text.
func (p *Prompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// Update forwards messages to the input while open.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	if !p.active {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt line.
func (p *Prompt) View() string {
	if !p.active {
		return ""
	}
	t := theme.Current
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(p.width).
		Render(p.input.View())
}
