package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vidyasagar/swb/internal/browser"
	"github.com/vidyasagar/swb/internal/chrome"
	"github.com/vidyasagar/swb/internal/storage"
	"github.com/vidyasagar/swb/internal/ui"
)

// Mode is the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeFollow
	ModeBookmarks
	ModeHistory
	ModeLogin
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeFollow:
		return "FOLLOW"
	case ModeBookmarks:
		return "BOOKMARKS"
	case ModeHistory:
		return "HISTORY"
	case ModeLogin:
		return "LOGIN"
	default:
		return "NORMAL"
	}
}

const historyPickerLimit = 200

// Model is the root bubbletea model. It owns the widgets and the input
// modes, and nothing else: every navigation intent becomes an event on
// the chrome queue, and every page arrives back as a message from the
// engine. The model never touches history state directly.
type Model struct {
	address ui.AddressBar
	status  ui.StatusBar
	vp      ui.PageViewport
	picker  ui.Picker
	prompt  ui.Prompt
	login   ui.LoginDialog

	keys KeyMap
	mode Mode

	queue  *chrome.Queue
	engine *Engine
	menu   []chrome.MenuNode
	visits *storage.VisitLog
	local  bool
	log    *zap.Logger

	page   *browser.RenderedPage
	width  int
	height int
}

// New creates the root model. visits may be nil when the database could
// not be opened; the history picker then shows nothing.
func New(queue *chrome.Queue, engine *Engine, menu []chrome.MenuNode, visits *storage.VisitLog, local bool, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		address: ui.NewAddressBar(),
		status:  ui.NewStatusBar(),
		vp:      ui.NewPageViewport(),
		picker:  ui.NewPicker(),
		prompt:  ui.NewPrompt(),
		login:   ui.NewLoginDialog(),
		keys:    DefaultKeyMap(),
		queue:   queue,
		engine:  engine,
		menu:    menu,
		visits:  visits,
		local:   local,
		log:     log,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.engine.SetWidth(msg.Width)
		return m, nil

	case loadStartedMsg:
		m.status.SetLoading(true)
		m.status.SetMessage("")
		return m, nil

	case pagePaintedMsg:
		m.page = msg.page
		m.vp.SetContent(msg.page.Content)
		m.status.SetLoading(false)
		m.status.SetMessage("")
		m.status.SetTitle(msg.page.Title)
		m.status.SetLinkCount(len(msg.page.Links))
		m.status.SetScrollInfo(m.vp.ScrollInfo())
		if m.visits != nil {
			if err := m.visits.Add(msg.url, msg.page.Title); err != nil {
				m.log.Warn("recording visit", zap.String("url", msg.url), zap.Error(err))
			}
		}
		return m, nil

	case addressTextMsg:
		// Do not clobber what the user is typing.
		if m.mode != ModeInsert {
			m.address.SetText(msg.url)
		}
		return m, nil

	case showLoginMsg:
		m.mode = ModeLogin
		m.status.SetMode(m.mode.String())
		return m, m.login.Open()

	case notifyMsg:
		m.status.SetLoading(false)
		m.status.SetMessage(msg.text)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	vp, cmd := m.vp.Update(msg)
	m.vp = *vp
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInsert:
		return m.handleInsertKey(msg)
	case ModeFollow:
		return m.handleFollowKey(msg)
	case ModeBookmarks, ModeHistory:
		return m.handlePickerKey(msg)
	case ModeLogin:
		return m.handleLoginKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ScrollDown):
		m.vp.LineDown(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.vp.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.vp.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.vp.HalfPageUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.vp.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.vp.GotoBottom()

	case key.Matches(msg, m.keys.OpenURL):
		m.mode = ModeInsert
		m.status.SetMode(m.mode.String())
		m.address.Reset()
		return m, m.address.Focus()

	case key.Matches(msg, m.keys.Back):
		m.queue.Enqueue(chrome.Event{Kind: chrome.KindBackRequested})
	case key.Matches(msg, m.keys.Forward):
		m.queue.Enqueue(chrome.Event{Kind: chrome.KindForwardRequested})
	case key.Matches(msg, m.keys.Reload):
		m.queue.Enqueue(chrome.Event{Kind: chrome.KindRefreshRequested})

	case key.Matches(msg, m.keys.FollowLink):
		if m.page == nil || len(m.page.Links) == 0 {
			m.status.SetMessage("no links on this page")
			return m, nil
		}
		m.mode = ModeFollow
		m.status.SetMode(m.mode.String())
		cmd := m.prompt.Open("link # ", fmt.Sprintf("1-%d", len(m.page.Links)))
		m.layout()
		return m, cmd

	case key.Matches(msg, m.keys.Bookmarks):
		if len(m.menu) == 0 {
			m.status.SetMessage("no bookmarks configured")
			return m, nil
		}
		m.mode = ModeBookmarks
		m.status.SetMode(m.mode.String())
		return m, m.picker.OpenMenu("Bookmarks", m.menu)

	case key.Matches(msg, m.keys.History):
		m.mode = ModeHistory
		m.status.SetMode(m.mode.String())
		return m, m.picker.OpenItems("History", m.historyItems())

	case key.Matches(msg, m.keys.Login):
		// Sign-in only applies when running against a sync account.
		if !m.local {
			m.queue.Enqueue(chrome.Event{Kind: chrome.KindLoginRequested})
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
	}

	m.status.SetScrollInfo(m.vp.ScrollInfo())
	return m, nil
}

func (m Model) handleInsertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.address.Blur()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		return m, nil
	case "enter":
		dest := strings.TrimSpace(m.address.Value())
		m.address.Blur()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		if dest != "" {
			m.queue.Enqueue(chrome.Event{Kind: chrome.KindNavigateTo, URL: dest})
		}
		return m, nil
	}
	var cmd tea.Cmd
	addr, cmd := m.address.Update(msg)
	m.address = *addr
	return m, cmd
}

func (m Model) handleFollowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		m.layout()
		return m, nil
	case "enter":
		value := m.prompt.Value()
		m.prompt.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		m.layout()

		n, err := strconv.Atoi(value)
		if err != nil || m.page == nil || n < 1 || n > len(m.page.Links) {
			m.status.SetMessage(fmt.Sprintf("no link %q", value))
			return m, nil
		}
		dest := resolveLink(m.engine.CurrentDisplayedURL(), m.page.Links[n-1].URL)
		m.queue.Enqueue(chrome.Event{Kind: chrome.KindNavigateTo, URL: dest})
		return m, nil
	}
	var cmd tea.Cmd
	prompt, cmd := m.prompt.Update(msg)
	m.prompt = *prompt
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picker.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		return m, nil
	case "down", "ctrl+n":
		m.picker.CursorDown()
		return m, nil
	case "up", "ctrl+p":
		m.picker.CursorUp()
		return m, nil
	case "enter":
		item, ok := m.picker.Selected()
		m.picker.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		if ok && item.URL != "" {
			m.queue.Enqueue(chrome.Event{Kind: chrome.KindNavigateTo, URL: item.URL})
		}
		return m, nil
	}
	var cmd tea.Cmd
	picker, cmd := m.picker.Update(msg)
	m.picker = *picker
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.login.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		return m, nil
	case "tab", "shift+tab":
		return m, m.login.NextField()
	case "enter":
		// The sync account backend is not wired up; accept and move on.
		m.login.Close()
		m.mode = ModeNormal
		m.status.SetMode(m.mode.String())
		m.status.SetMessage("sign-in is not available yet")
		return m, nil
	}
	var cmd tea.Cmd
	login, cmd := m.login.Update(msg)
	m.login = *login
	return m, cmd
}

// historyItems loads the recent visits for the picker. Failures show an
// empty list; browsing keeps working without the database.
func (m *Model) historyItems() []ui.PickerItem {
	if m.visits == nil {
		return nil
	}
	visits, err := m.visits.Recent(historyPickerLimit)
	if err != nil {
		m.log.Warn("loading history", zap.Error(err))
		return nil
	}
	items := make([]ui.PickerItem, 0, len(visits))
	for _, v := range visits {
		title := v.Title
		if title == "" {
			title = v.URL
		}
		items = append(items, ui.PickerItem{Title: title, URL: v.URL})
	}
	return items
}

func (m *Model) showHelp() {
	var sb strings.Builder
	sb.WriteString("\n  Keybindings\n\n")
	bindings := []key.Binding{
		m.keys.OpenURL, m.keys.FollowLink, m.keys.Back, m.keys.Forward,
		m.keys.Reload, m.keys.Bookmarks, m.keys.History, m.keys.Login,
		m.keys.ScrollDown, m.keys.ScrollUp, m.keys.HalfPageDown,
		m.keys.HalfPageUp, m.keys.GotoTop, m.keys.GotoBottom,
		m.keys.Help, m.keys.Quit,
	}
	for _, b := range bindings {
		h := b.Help()
		sb.WriteString(fmt.Sprintf("    %-12s %s\n", h.Key, h.Desc))
	}
	m.vp.SetContent(sb.String())
	m.status.SetTitle("Help")
	m.status.SetLinkCount(0)
}

// resolveLink resolves an extracted href against the page it came from,
// so relative links on rendered pages stay followable.
func resolveLink(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return href
	}
	hrefURL, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(hrefURL).String()
}

func (m *Model) layout() {
	m.address.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.prompt.SetWidth(m.width)
	m.picker.SetSize(m.width, m.height)
	m.login.SetSize(m.width, m.height)

	// Address bar takes 3 rows (border), status 1, prompt 1 when open.
	content := m.height - 4
	if m.prompt.IsActive() {
		content--
	}
	if content < 1 {
		content = 1
	}
	m.vp.SetSize(m.width, content)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading swb..."
	}

	if m.mode == ModeLogin && m.login.IsActive() {
		return m.login.View()
	}
	if (m.mode == ModeBookmarks || m.mode == ModeHistory) && m.picker.IsActive() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	sections := []string{m.address.View(), m.vp.View()}
	if m.prompt.IsActive() {
		sections = append(sections, m.prompt.View())
	}
	sections = append(sections, m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
