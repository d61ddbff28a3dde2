// Package tui is a terminal client for the list endpoints. Every
// interaction goes through querystate, the navigator performs the round
// trip and the pagination controls are re-rendered from each response.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	jsoniter "github.com/json-iterator/go"

	"github.com/ahmadalnaib/project-board/internal/navigator"
	"github.com/ahmadalnaib/project-board/internal/pagination"
	"github.com/ahmadalnaib/project-board/internal/querystate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// loadedMsg carries a view the navigator applied for the visit to url.
type loadedMsg struct {
	url  string
	view navigator.View
}

// failedMsg reports a round trip that failed; the screen keeps its content.
type failedMsg struct {
	url string
	err error
}

// Model is the bubbletea model of one list screen.
type Model struct {
	view  View
	nav   *navigator.Navigator
	state querystate.State

	rows     []row
	controls []pagination.Control
	focus    int
	total    int
	loaded   bool

	search   textinput.Model
	pending  string
	notice   string
	width    int
	quitting bool
}

// New creates a model showing view through nav, starting from the
// navigator's current state.
func New(view View, nav *navigator.Navigator) Model {
	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "type and press enter"
	search.CharLimit = 255

	state := nav.Current().State
	search.SetValue(state.Get(view.SearchKey))

	return Model{
		view:   view,
		nav:    nav,
		state:  state,
		search: search,
		focus:  -1,
	}
}

func (m Model) Init() tea.Cmd {
	return m.visit(m.state, m.state.Reload())
}

// visit runs one navigation in the background. Superseded visits produce
// no message.
func (m Model) visit(next querystate.State, intent querystate.Intent) tea.Cmd {
	nav := m.nav
	return func() tea.Msg {
		view, err := nav.Visit(context.Background(), next, intent)
		switch {
		case errors.Is(err, navigator.ErrSuperseded):
			return nil
		case err != nil:
			return failedMsg{url: intent.URL, err: err}
		}
		return loadedMsg{url: intent.URL, view: view}
	}
}

// dispatch moves the screen to next at once so that further keys build on
// it, and starts the round trip. A failure restores the navigator's state.
func (m Model) dispatch(next querystate.State, intent querystate.Intent) (Model, tea.Cmd) {
	m.state = next
	m.pending = intent.URL
	return m, m.visit(next, intent)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		return m.apply(msg.url, msg.view), nil

	case failedMsg:
		if msg.url == m.pending {
			m.pending = ""
			m.state = m.nav.Current().State
			if !m.search.Focused() {
				m.search.SetValue(m.state.Get(m.view.SearchKey))
			}
		}
		m.notice = fmt.Sprintf("Could not load %s: %v", msg.url, msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// apply replaces the screen with a loaded view. When a newer visit is
// already pending, its state stays on screen until that visit lands.
func (m Model) apply(url string, view navigator.View) Model {
	if m.pending == "" || m.pending == url {
		m.state = view.State
		m.pending = ""
	}
	m.notice = ""
	m.loaded = true
	m.total = view.Response.Meta.Total

	rows := make([]row, 0, len(view.Response.Data))
	for _, raw := range view.Response.Data {
		var r row
		if err := json.Unmarshal(raw, &r); err != nil {
			m.notice = fmt.Sprintf("Could not read a row: %v", err)
			continue
		}
		rows = append(rows, r)
	}
	m.rows = rows

	m.controls = pagination.Controls(view.Response.Meta.Links)
	m.focus = pagination.Initial(m.controls)
	if !m.search.Focused() {
		m.search.SetValue(m.state.Get(m.view.SearchKey))
	}
	return m
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gesture := querystate.GestureKeystroke
	switch msg.String() {
	case "enter":
		gesture = querystate.GestureEnter
	case "esc", "tab":
		gesture = querystate.GestureBlur
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if !gesture.Commits() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	m.search.Blur()
	next, intent, ok := m.state.Commit(m.view.SearchKey, m.search.Value(), gesture)
	if !ok || next.Equal(m.state) {
		return m, nil
	}
	return m.dispatch(next, intent)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "left", "h":
		m.focus = pagination.Move(m.controls, m.focus, -1)
		return m, nil
	case "right", "l":
		m.focus = pagination.Move(m.controls, m.focus, 1)
		return m, nil
	case "enter":
		next, intent, ok := pagination.Activate(m.controls, m.focus, m.state)
		if !ok {
			return m, nil
		}
		return m.dispatch(next, intent)
	case "r":
		return m.dispatch(m.state, m.state.Reload())
	case "x":
		if len(m.state.Params()) == 0 {
			return m, nil
		}
		cleared, intent := querystate.New(m.state.Path(), nil).SetFilter(m.view.SearchKey, "")
		return m.dispatch(cleared, intent)
	}

	for _, filter := range m.view.Filters {
		if key == filter.Shortcut {
			next, intent := m.state.SetFilter(filter.Key, filter.Next(m.state.Get(filter.Key)))
			return m.dispatch(next, intent)
		}
	}
	for _, column := range m.view.Columns {
		if column.SortField != "" && key == column.Shortcut {
			next, intent := m.state.ToggleSort(column.SortField)
			return m.dispatch(next, intent)
		}
	}
	return m, nil
}

// Rows returns the titles of the rows on screen.
func (m Model) Rows() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = strings.TrimSpace(r.Name + r.Title)
	}
	return out
}

// State returns the query state on screen.
func (m Model) State() querystate.State {
	return m.state
}
