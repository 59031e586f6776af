package dashboard

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of cells consumed by two border edges.
const borderChrome = 2

// paneHeader is the number of pane rows used by the title and rule lines.
const paneHeader = 2

// Options configures a dashboard Model from application config.
type Options struct {
	DefaultLeagues  []string // League names activated once the list loads.
	AutomaticReload bool     // Fetch a league's schedule when it is selected.
	SpoilResults    bool
	SpoilMatches    bool
	Log             *slog.Logger
}

// Model is the root Bubble Tea model for the schedule dashboard.
// All state mutation happens here, serially, one message at a time;
// fetches run as fire-and-forget commands reporting back via messages.
type Model struct {
	provider Provider
	index    *schedule.Index
	opts     Options

	focus   Focus
	leagues leaguesState
	sched   scheduleState
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
	now    func() time.Time
}

// NewModel creates a dashboard Model with league-pane focus and the
// league list loading.
func NewModel(provider Provider, opts Options) Model {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		provider: provider,
		index:    schedule.NewIndex(),
		opts:     opts,
		focus:    PaneLeagues,
		leagues:  newLeaguesState(),
		sched: scheduleState{
			view:         schedule.NewViewportState(),
			spoilResults: opts.SpoilResults,
			spoilMatches: opts.SpoilMatches,
		},
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		now:     time.Now,
	}
}

// Init dispatches the initial league load and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadLeagues(m.provider))
}

// Update handles incoming messages. Fetch results are applied here in
// arrival order, which is the only synchronization in the program.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m = m.syncViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.leagues.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LeaguesLoadedMsg:
		return m.applyLeagues(msg)

	case ScheduleLoadedMsg:
		if !msg.OK {
			return m, nil
		}
		m.index.AddEvents(msg.LeagueID, msg.Events)
		m.sched.view.SelectToday(m.index.Visible(), m.now())
		m = m.syncViewport()
		return m, nil

	case ToggleLeagueMsg:
		var cmd tea.Cmd
		if msg.Selected {
			m.index.SetActive(msg.ID)
			if m.opts.AutomaticReload {
				cmd = loadSchedule(m.provider, msg.ID)
			}
		} else {
			m.index.UnsetActive(msg.ID)
		}
		m.sched.view.SelectToday(m.index.Visible(), m.now())
		m = m.syncViewport()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyLeagues installs a loaded league list and activates the
// configured default leagues by name.
func (m Model) applyLeagues(msg LeaguesLoadedMsg) (Model, tea.Cmd) {
	m.leagues = m.leagues.applyLeagues(msg.Leagues, msg.OK)
	if !msg.OK {
		return m, nil
	}

	var cmds []tea.Cmd
	for _, name := range m.opts.DefaultLeagues {
		id, found := m.leagues.SelectByName(name)
		if !found {
			m.opts.Log.Warn("default league not found", "name", name)
			continue
		}
		m.index.SetActive(id)
		if m.opts.AutomaticReload {
			cmds = append(cmds, loadSchedule(m.provider, id))
		}
	}
	m = m.syncViewport()
	return m, tea.Batch(cmds...)
}

// handleKey processes key messages with global and focus-based routing.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.focus = PaneLeagues
		m.sched.view.Focused = false
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.focus = PaneSchedule
		m.sched.view.Focused = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus == PaneLeagues {
			m.leagues = m.leagues.CursorUp().clampView(m.paneRows())
		} else {
			m.sched.view.ScrollUp(1)
			m = m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == PaneLeagues {
			m.leagues = m.leagues.CursorDown().clampView(m.paneRows())
		} else {
			m.sched.view.ScrollDown(1)
			m = m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.focus != PaneLeagues {
			return m, nil
		}
		var cmd tea.Cmd
		m.leagues, cmd = m.leagues.Toggle()
		return m, cmd

	case key.Matches(msg, m.keys.Today):
		m.sched.view.SelectToday(m.index.Visible(), m.now())
		m = m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.SpoilResults):
		m.sched.spoilResults = !m.sched.spoilResults
		return m, nil

	case key.Matches(msg, m.keys.SpoilMatches):
		m.sched.spoilMatches = !m.sched.spoilMatches
		return m, nil
	}

	return m, nil
}

// reload refetches the league list after a failed load, or the schedules
// of all selected leagues otherwise. Each schedule fetch is its own
// command touching its own cache file.
func (m Model) reload() tea.Cmd {
	if m.leagues.failed {
		return loadLeagues(m.provider)
	}
	var cmds []tea.Cmd
	for _, id := range m.leagues.SelectedIDs() {
		cmds = append(cmds, loadSchedule(m.provider, id))
	}
	return tea.Batch(cmds...)
}

// syncViewport recomputes the schedule window for the current visible
// sequence and pane height.
func (m Model) syncViewport() Model {
	m.sched = m.sched.syncViewport(m.index.Visible(), m.scheduleRows())
	return m
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// paneRows returns the list rows available below a pane's header.
func (m Model) paneRows() int {
	r := m.contentHeight() - paneHeader
	if r < 1 {
		return 1
	}
	return r
}

// scheduleRows is the row budget handed to the viewport engine.
func (m Model) scheduleRows() int {
	return m.paneRows()
}

// View renders the two-pane layout with the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width, m.leagues.Longest())
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeagues {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftInner := leftWidth - borderChrome
	rightInner := rightWidth - borderChrome
	leftStyle = leftStyle.Width(leftInner).Height(contentHeight)
	rightStyle = rightStyle.Width(rightInner).Height(contentHeight)

	visible, total := m.index.Counts()
	leftPane := leftStyle.Render(
		m.leagues.View(leftInner, contentHeight, m.focus == PaneLeagues, m.spinner.View()))
	rightPane := rightStyle.Render(
		m.sched.View(rightInner, contentHeight, m.focus == PaneSchedule, visible, total))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, panes, helpView)
}
