package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "prayerlog/internal/modules/session/dto"
	"prayerlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionsPort interface {
	Month(ctx context.Context, month time.Time) (sessiondto.MonthOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type MonthLoadedMsg struct {
	Month sessiondto.MonthOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record sessiondto.RecordOutput
}

func (i recordItem) Title() string { return i.record.Date + "  " + i.record.DurationFormatted }

func (i recordItem) Description() string {
	if i.record.PrayerType == "" {
		return "untagged"
	}
	return i.record.PrayerType
}

func (i recordItem) FilterValue() string { return i.record.Date + " " + i.record.PrayerType }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SessionsPort
	month   time.Time
	total   string
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port SessionsPort, month time.Time) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:    port,
		month:   firstOfMonth(month),
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
	m.list.Title = m.title()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the shown month again, e.g. after the record set changed.
func (m Model) Reload() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		out, err := m.port.Month(context.Background(), month)
		return MonthLoadedMsg{Month: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case MonthLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.title() + " - " + msg.Err.Error()
			return m, nil
		}
		if msg.Month.Year != m.month.Year() || msg.Month.Month != int(m.month.Month()) {
			return m, nil
		}
		m.total = msg.Month.TotalDurationFormatted
		m.list.Title = m.title()
		items := make([]list.Item, len(msg.Month.Records))
		for i, r := range msg.Month.Records {
			items[i] = recordItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "[":
				m.month = m.month.AddDate(0, -1, 0)
				m.list.Title = m.title()
				return m, m.Reload()
			case "]":
				m.month = m.month.AddDate(0, 1, 0)
				m.list.Title = m.title()
				return m, m.Reload()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) title() string {
	title := "Sessions " + m.month.Format("January 2006")
	if m.total != "" {
		title += "  (" + m.total + ")"
	}
	return title
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return theme.Muted.Render("No sessions this month\n\n[ / ]: previous / next month")
	}
	r := item.record
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Date) + "\n\n")
	sb.WriteString(theme.Muted.Render("duration: ") + r.DurationFormatted + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("seconds:  "), r.DurationSeconds))
	sb.WriteString(theme.Muted.Render("saved:    ") + r.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	if r.PrayerType != "" {
		sb.WriteString(theme.Muted.Render("type:     ") + r.PrayerType + "\n")
	}
	sb.WriteString(theme.Muted.Render("id:       ") + r.ID + "\n")
	sb.WriteString("\n" + theme.Muted.Render("[ / ]: previous / next month  /: filter"))
	return sb.String()
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
