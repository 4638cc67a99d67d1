package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/swb/internal/theme"
)

// LoginDialog is the sign-in modal. It collects a username and password
// for bookmark sync but submits nowhere yet; the sync account flow
// behind it has never been finished, so submit simply closes the
// dialog.
type LoginDialog struct {
	username textinput.Model
	password textinput.Model
	focusPw  bool
	active   bool
	width    int
	height   int
}

// NewLoginDialog creates an inactive dialog.
func NewLoginDialog() LoginDialog {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 128

	pw := textinput.New()
	pw.Placeholder = "password"
	pw.CharLimit = 128
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	return LoginDialog{username: user, password: pw}
}

// SetSize sets the window dimensions the modal centers within.
func (d *LoginDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Open shows the dialog with the username field focused.
func (d *LoginDialog) Open() tea.Cmd {
	d.active = true
	d.focusPw = false
	d.username.Reset()
	d.password.Reset()
	d.password.Blur()
	return d.username.Focus()
}

// Close hides the dialog and drops whatever was typed.
func (d *LoginDialog) Close() {
	d.active = false
	d.username.Blur()
	d.password.Blur()
	d.username.Reset()
	d.password.Reset()
}

// IsActive reports whether the dialog is shown.
func (d *LoginDialog) IsActive() bool {
	return d.active
}

// NextField moves focus between the two inputs.
func (d *LoginDialog) NextField() tea.Cmd {
	d.focusPw = !d.focusPw
	if d.focusPw {
		d.username.Blur()
		return d.password.Focus()
	}
	d.password.Blur()
	return d.username.Focus()
}

// Update forwards messages to the focused input.
func (d *LoginDialog) Update(msg tea.Msg) (*LoginDialog, tea.Cmd) {
	if !d.active {
		return d, nil
	}
	var cmd tea.Cmd
	if d.focusPw {
		d.password, cmd = d.password.Update(msg)
	} else {
		d.username, cmd = d.username.Update(msg)
	}
	return d, cmd
}

// View renders the centered modal.
func (d *LoginDialog) View() string {
	if !d.active {
		return ""
	}
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Sign in"))
	sb.WriteString("\n\n")
	sb.WriteString(d.username.View())
	sb.WriteString("\n")
	sb.WriteString(d.password.View())
	sb.WriteString("\n\n")
	sb.WriteString(hintStyle.Render("tab: switch field  enter: submit  esc: cancel"))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Background(t.Background).
		Padding(1, 3).
		Render(sb.String())

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(t.Background),
	)
}
