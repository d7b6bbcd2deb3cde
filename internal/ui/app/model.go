package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	capturedto "prayerlog/internal/modules/capture/dto"
	rewarddto "prayerlog/internal/modules/reward/dto"
	apperrors "prayerlog/internal/platform/errors"
	"prayerlog/internal/ui/components"
	"prayerlog/internal/ui/theme"
	levelsview "prayerlog/internal/ui/views/levels"
	sessionsview "prayerlog/internal/ui/views/sessions"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type capturePort interface {
	Toggle(ctx context.Context) (capturedto.StateOutput, error)
	Restart(ctx context.Context) (capturedto.StateOutput, error)
	OpenManual(ctx context.Context) (capturedto.StateOutput, error)
	SetManual(ctx context.Context, input capturedto.ManualInput) (capturedto.StateOutput, error)
	CancelManual(ctx context.Context) (capturedto.StateOutput, error)
	Save(ctx context.Context) (capturedto.SaveOutput, error)
	State(ctx context.Context) capturedto.StateOutput
}

type rewardPort interface {
	Status(ctx context.Context) rewarddto.StatusOutput
	Levels(ctx context.Context) []rewarddto.LevelOutput
	Acknowledge(ctx context.Context) (rewarddto.AckOutput, error)
	OnChange(handler rewarddto.StatusHandler)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStopwatch tabID = iota
	tabSessions
	tabLevels
	tabCount
)

var tabLabels = [tabCount]string{
	"Stopwatch", "Sessions", "Levels",
}

// refreshInterval is how often the stopwatch readout is redrawn.
const refreshInterval = 250 * time.Millisecond

// ─── async messages ──────────────────────────────────────────────────────────

type refreshMsg time.Time

type statusChangedMsg struct {
	status rewarddto.StatusOutput
}

// captureMsg carries the outcome of a capture transition. action names what
// was attempted, for the status line.
type captureMsg struct {
	state  capturedto.StateOutput
	err    error
	action string
}

type savedMsg struct {
	out capturedto.SaveOutput
	err error
}

type ackMsg struct {
	out rewarddto.AckOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Restart key.Binding
	Manual  key.Binding
	Ack     key.Binding
	Month   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save session")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "discard & reset")),
		Manual:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manual entry")),
		Ack:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "dismiss level-up")),
		Month:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "month")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Save, k.Manual, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Save, k.Restart, k.Manual},
		{k.Ack, k.Month, k.Tab},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the stopwatch
// readout, the reward header and the manual-entry prompt. Business logic is
// delegated to the ports; the record list and level table render in sub-views.
type Model struct {
	capture capturePort
	rewards rewardPort
	statusC chan rewarddto.StatusOutput

	sessionsView sessionsview.Model
	levelsView   levelsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	manual    components.ManualEntry
	state     capturedto.StateOutput
	reward    rewarddto.StatusOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(capture capturePort, rewards rewardPort, sessions sessionsview.SessionsPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	statusC := make(chan rewarddto.StatusOutput, 1)
	rewards.OnChange(func(status rewarddto.StatusOutput) {
		// keep only the newest status when the UI falls behind
		for {
			select {
			case statusC <- status:
				return
			default:
				select {
				case <-statusC:
				default:
				}
			}
		}
	})
	ctx := context.Background()
	m := Model{
		capture:      capture,
		rewards:      rewards,
		statusC:      statusC,
		sessionsView: sessionsview.New(sessions, now()),
		levelsView:   levelsview.New(),
		activeTab:    tabStopwatch,
		keys:         defaultKeys(),
		help:         help.New(),
		manual:       components.NewManualEntry(),
		state:        capture.State(ctx),
		reward:       rewards.Status(ctx),
		status:       "ready",
	}
	m.levelsView.SetLevels(rewards.Levels(ctx))
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sessionsView.Init(),
		refreshCmd(),
		m.waitStatusCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The manual prompt intercepts all key input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.manual.Visible() {
		var cmd tea.Cmd
		m.manual, cmd = m.manual.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.manual.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case refreshMsg:
		m.state = m.capture.State(context.Background())
		return m, refreshCmd()

	case statusChangedMsg:
		m.reward = msg.status
		m.levelsView.SetLevels(m.rewards.Levels(context.Background()))
		return m, tea.Batch(m.waitStatusCmd(), m.sessionsView.Reload())

	case captureMsg:
		m.state = msg.state
		if msg.err != nil {
			m.status = msg.action + ": " + describe(msg.err)
		} else {
			m.status = msg.action
		}
		if msg.action == "manual entry" && msg.err == nil {
			return m, m.manual.Open(msg.state.Manual.Date)
		}

	case savedMsg:
		m.state = m.capture.State(context.Background())
		if msg.err != nil {
			m.status = "save failed: " + describe(msg.err)
			if m.state.Mode == "manual" {
				return m, m.manual.Reopen(describe(msg.err))
			}
			return m, nil
		}
		m.status = fmt.Sprintf("saved %s on %s", msg.out.DurationFormatted, msg.out.Date)

	case ackMsg:
		if msg.err != nil {
			m.status = "dismiss failed: " + describe(msg.err)
		} else if msg.out.Cleared {
			m.status = fmt.Sprintf("level %d acknowledged", msg.out.Level)
		}

	case components.ManualSubmitMsg:
		return m, m.submitManualCmd(msg)

	case components.ManualErrorMsg:
		m.status = "manual entry: " + msg.Err.Error()

	case components.ManualCancelMsg:
		return m, m.captureCmd("manual entry cancelled", m.capture.CancelManual)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sessions list when its search filter is active.
		if m.activeTab == tabSessions && m.sessionsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case " ":
			return m, m.captureCmd("stopwatch", m.capture.Toggle)
		case "r":
			return m, m.captureCmd("reset", m.capture.Restart)
		case "m":
			if m.state.Mode == "manual" {
				return m, m.manual.Open(m.state.Manual.Date)
			}
			return m, m.captureCmd("manual entry", m.capture.OpenManual)
		case "s":
			m.status = "saving…"
			return m, m.saveCmd()
		case "a":
			return m, m.ackCmd()
		}
	}

	// Keys go to the visible tab only; the sessions view keeps receiving its
	// load and spinner messages while hidden.
	var tabCmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch m.activeTab {
		case tabSessions:
			m.sessionsView, tabCmd = m.sessionsView.Update(msg)
		case tabLevels:
			m.levelsView, tabCmd = m.levelsView.Update(msg)
		}
	} else {
		m.sessionsView, tabCmd = m.sessionsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.manual.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.manual.View())
	default:
		content = m.activeView(contentH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView(height int) string {
	switch m.activeTab {
	case tabSessions:
		return m.sessionsView.View()
	case tabLevels:
		return m.levelsView.View()
	}
	return m.renderStopwatch(height)
}

func (m Model) renderStopwatch(height int) string {
	var sb strings.Builder
	if m.reward.HasPendingLevelUp {
		sb.WriteString(theme.Banner.Render(fmt.Sprintf("Level %d reached: %s   (a to dismiss)", m.reward.PendingLevel, m.reward.PendingTitle)))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.renderRewardHeader() + "\n")

	readout := m.state.ElapsedFormatted
	if m.state.Mode == "manual" {
		readout = "manual entry"
	}
	sb.WriteString(theme.Timer.Render(readout) + "\n")
	sb.WriteString(theme.Muted.Render(m.modeHint()) + "\n")

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		theme.PaneActive.Render(sb.String()))
}

func (m Model) renderRewardHeader() string {
	r := m.reward
	if !r.SignedIn {
		return theme.Muted.Render("not signed in: set user_id in config or PRAYERLOG_USER_ID")
	}
	title := r.CurrentTitle
	if r.CurrentLevel == 0 {
		title = "no level yet"
	}
	line := fmt.Sprintf("%s  %s  %s",
		theme.Title.Render(fmt.Sprintf("Level %d", r.CurrentLevel)),
		title,
		theme.Muted.Render(fmt.Sprintf("%d pts · %s total", r.TotalPoints, r.TotalDurationFormatted)))
	if r.NextLevel == 0 {
		return line + "\n" + theme.Good.Render("top level reached")
	}
	next := fmt.Sprintf("%s %s",
		theme.Bar(r.NextProgress.Percentage, 24),
		theme.Muted.Render(fmt.Sprintf("%d/%d to level %d", r.NextProgress.Current, r.NextProgress.Required, r.NextLevel)))
	return line + "\n" + next
}

func (m Model) modeHint() string {
	switch m.state.Mode {
	case "running":
		return "space: stop   r: discard"
	case "stopped":
		return "s: save   space: resume   r: discard"
	case "manual":
		return "m: edit entry   s: save"
	default:
		return "space: start   m: manual entry"
	}
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "prayerlog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.state.Running {
		left = theme.Hot.Render("● "+m.state.ElapsedFormatted) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.levelsView, _ = m.levelsView.Update(sz)
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotSignedIn):
		return "no signed-in user"
	case errors.Is(err, apperrors.ErrSaveInFlight):
		return "a save is already in progress"
	case errors.Is(err, apperrors.ErrNothingToSave):
		return "nothing to save"
	}
	return err.Error()
}

// ─── async commands ──────────────────────────────────────────────────────────

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) waitStatusCmd() tea.Cmd {
	return func() tea.Msg {
		return statusChangedMsg{status: <-m.statusC}
	}
}

func (m Model) captureCmd(action string, fn func(context.Context) (capturedto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return captureMsg{state: state, err: err, action: action}
	}
}

func (m Model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.capture.Save(context.Background())
		return savedMsg{out: out, err: err}
	}
}

func (m Model) submitManualCmd(entry components.ManualSubmitMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		input := capturedto.ManualInput{Date: entry.Date, Hours: entry.Hours, Minutes: entry.Minutes, Seconds: entry.Seconds}
		if _, err := m.capture.SetManual(ctx, input); err != nil {
			return savedMsg{err: err}
		}
		out, err := m.capture.Save(ctx)
		return savedMsg{out: out, err: err}
	}
}

func (m Model) ackCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.rewards.Acknowledge(context.Background())
		return ackMsg{out: out, err: err}
	}
}
