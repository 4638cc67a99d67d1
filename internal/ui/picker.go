package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vidyasagar/swb/internal/chrome"
	"github.com/vidyasagar/swb/internal/theme"
)

// PickerItem is one row of the picker overlay. Group rows are headers
// and cannot be selected.
type PickerItem struct {
	Title string
	URL   string
	Group bool
}

// Picker is the overlay list used for the bookmark menu and the history
// list. Typing filters the selectable rows with fuzzy matching;
// selecting a row hands its URL back to the app, which enqueues the
// navigation. The picker itself never navigates.
type Picker struct {
	filter  textinput.Model
	items   []PickerItem
	visible []PickerItem
	cursor  int
	title   string
	active  bool
	width   int
	height  int
}

// NewPicker creates an inactive picker.
func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 128
	ti.Prompt = "/ "
	return Picker{filter: ti}
}

// OpenMenu shows the picker over a materialized bookmark menu. Groups
// become headers with their children indented beneath them.
func (p *Picker) OpenMenu(title string, nodes []chrome.MenuNode) tea.Cmd {
	var items []PickerItem
	for _, n := range nodes {
		if n.IsLeaf() {
			items = append(items, PickerItem{Title: n.Title, URL: n.URL})
			continue
		}
		items = append(items, PickerItem{Title: n.Title, Group: true})
		for _, child := range n.Items {
			items = append(items, PickerItem{Title: child.Title, URL: child.URL})
		}
	}
	return p.OpenItems(title, items)
}

// OpenItems shows the picker over a flat item list.
func (p *Picker) OpenItems(title string, items []PickerItem) tea.Cmd {
	p.title = title
	p.items = items
	p.active = true
	p.filter.Reset()
	p.refilter()
	return p.filter.Focus()
}

// Close hides the picker.
func (p *Picker) Close() {
	p.active = false
	p.filter.Blur()
	p.filter.Reset()
	p.items = nil
	p.visible = nil
	p.cursor = 0
}

// IsActive reports whether the picker is shown.
func (p *Picker) IsActive() bool {
	return p.active
}

// SetSize sets the overlay dimensions.
func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.filter.Width = width/2 - 8
}

// CursorDown moves the selection down, skipping group headers.
func (p *Picker) CursorDown() {
	for i := p.cursor + 1; i < len(p.visible); i++ {
		if !p.visible[i].Group {
			p.cursor = i
			return
		}
	}
}

// CursorUp moves the selection up, skipping group headers.
func (p *Picker) CursorUp() {
	for i := p.cursor - 1; i >= 0; i-- {
		if !p.visible[i].Group {
			p.cursor = i
			return
		}
	}
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (PickerItem, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) || p.visible[p.cursor].Group {
		return PickerItem{}, false
	}
	return p.visible[p.cursor], true
}

// Update forwards typing to the filter input and refilters.
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	if !p.active {
		return p, nil
	}
	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.refilter()
	}
	return p, cmd
}

// refilter recomputes the visible rows. With no filter the full list
// shows, headers included; with a filter only matching selectable rows
// remain.
func (p *Picker) refilter() {
	query := strings.TrimSpace(p.filter.Value())
	if query == "" {
		p.visible = p.items
	} else {
		p.visible = nil
		for _, item := range p.items {
			if item.Group {
				continue
			}
			if fuzzy.MatchFold(query, item.Title) || fuzzy.MatchFold(query, item.URL) {
				p.visible = append(p.visible, item)
			}
		}
	}
	p.cursor = 0
	if len(p.visible) > 0 && p.visible[0].Group {
		p.CursorDown()
	}
}

// View renders the overlay box.
func (p *Picker) View() string {
	if !p.active {
		return ""
	}
	t := theme.Current

	boxWidth := p.width / 2
	if boxWidth < 40 {
		boxWidth = 40
	}
	maxRows := p.height - 8
	if maxRows < 3 {
		maxRows = 3
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	groupStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	itemStyle := lipgloss.NewStyle().Foreground(t.Text)
	urlStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Primary)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.title))
	sb.WriteString("\n")
	sb.WriteString(p.filter.View())
	sb.WriteString("\n\n")

	if len(p.visible) == 0 {
		sb.WriteString(urlStyle.Render("  nothing here"))
		sb.WriteString("\n")
	}

	start := 0
	if p.cursor >= maxRows {
		start = p.cursor - maxRows + 1
	}
	for i := start; i < len(p.visible) && i < start+maxRows; i++ {
		item := p.visible[i]
		switch {
		case item.Group:
			sb.WriteString(groupStyle.Render(item.Title))
		case i == p.cursor:
			sb.WriteString(selectedStyle.Render("  " + item.Title + "  "))
			sb.WriteString(urlStyle.Render(" " + item.URL))
		default:
			sb.WriteString(itemStyle.Render("  " + item.Title))
			sb.WriteString(urlStyle.Render(" " + item.URL))
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Background(t.Background).
		Padding(1, 2).
		Width(boxWidth).
		Render(sb.String())
}
