// Package theme holds the color palettes for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the widgets.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color

	Background  lipgloss.Color
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Link      lipgloss.Color
	LinkIndex lipgloss.Color
	Heading   lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color
}

var themes = map[string]Theme{
	"default": Default,
	"gruvbox": Gruvbox,
	"nord":    Nord,
	"dracula": Dracula,
}

var Default = Theme{
	Name:        "default",
	Primary:     lipgloss.Color("#7C3AED"),
	Secondary:   lipgloss.Color("#06B6D4"),
	Accent:      lipgloss.Color("#F59E0B"),
	Text:        lipgloss.Color("#E2E8F0"),
	TextDim:     lipgloss.Color("#64748B"),
	Background:  lipgloss.Color("#0F172A"),
	Surface:     lipgloss.Color("#1E293B"),
	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#7C3AED"),
	Link:        lipgloss.Color("#38BDF8"),
	LinkIndex:   lipgloss.Color("#F59E0B"),
	Heading:     lipgloss.Color("#A78BFA"),
	Error:       lipgloss.Color("#EF4444"),
	Success:     lipgloss.Color("#22C55E"),
	Warning:     lipgloss.Color("#F59E0B"),
	Info:        lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:        "gruvbox",
	Primary:     lipgloss.Color("#D65D0E"),
	Secondary:   lipgloss.Color("#458588"),
	Accent:      lipgloss.Color("#D79921"),
	Text:        lipgloss.Color("#EBDBB2"),
	TextDim:     lipgloss.Color("#928374"),
	Background:  lipgloss.Color("#282828"),
	Surface:     lipgloss.Color("#3C3836"),
	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#D65D0E"),
	Link:        lipgloss.Color("#83A598"),
	LinkIndex:   lipgloss.Color("#FABD2F"),
	Heading:     lipgloss.Color("#FE8019"),
	Error:       lipgloss.Color("#FB4934"),
	Success:     lipgloss.Color("#B8BB26"),
	Warning:     lipgloss.Color("#FABD2F"),
	Info:        lipgloss.Color("#83A598"),
}

var Nord = Theme{
	Name:        "nord",
	Primary:     lipgloss.Color("#88C0D0"),
	Secondary:   lipgloss.Color("#81A1C1"),
	Accent:      lipgloss.Color("#EBCB8B"),
	Text:        lipgloss.Color("#ECEFF4"),
	TextDim:     lipgloss.Color("#4C566A"),
	Background:  lipgloss.Color("#2E3440"),
	Surface:     lipgloss.Color("#3B4252"),
	Border:      lipgloss.Color("#434C5E"),
	BorderFocus: lipgloss.Color("#88C0D0"),
	Link:        lipgloss.Color("#81A1C1"),
	LinkIndex:   lipgloss.Color("#EBCB8B"),
	Heading:     lipgloss.Color("#8FBCBB"),
	Error:       lipgloss.Color("#BF616A"),
	Success:     lipgloss.Color("#A3BE8C"),
	Warning:     lipgloss.Color("#EBCB8B"),
	Info:        lipgloss.Color("#81A1C1"),
}

var Dracula = Theme{
	Name:        "dracula",
	Primary:     lipgloss.Color("#BD93F9"),
	Secondary:   lipgloss.Color("#8BE9FD"),
	Accent:      lipgloss.Color("#FFB86C"),
	Text:        lipgloss.Color("#F8F8F2"),
	TextDim:     lipgloss.Color("#6272A4"),
	Background:  lipgloss.Color("#282A36"),
	Surface:     lipgloss.Color("#44475A"),
	Border:      lipgloss.Color("#6272A4"),
	BorderFocus: lipgloss.Color("#BD93F9"),
	Link:        lipgloss.Color("#8BE9FD"),
	LinkIndex:   lipgloss.Color("#FFB86C"),
	Heading:     lipgloss.Color("#FF79C6"),
	Error:       lipgloss.Color("#FF5555"),
	Success:     lipgloss.Color("#50FA7B"),
	Warning:     lipgloss.Color("#F1FA8C"),
	Info:        lipgloss.Color("#8BE9FD"),
}

// Current is the active theme.
var Current = Default

// Set switches the active theme by name. Reports whether the name was
// known.
func Set(name string) bool {
	t, ok := themes[name]
	if !ok {
		return false
	}
	Current = t
	return true
}

// List returns the available theme names.
func List() []string {
	return []string{"default", "gruvbox", "nord", "dracula"}
}
