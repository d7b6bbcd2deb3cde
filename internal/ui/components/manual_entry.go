package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prayerlog/internal/platform/duration"
	"prayerlog/internal/ui/theme"
)

// ManualSubmitMsg is emitted when the user confirms a parsed entry.
type ManualSubmitMsg struct {
	Date    string
	Hours   int
	Minutes int
	Seconds int
}

// ManualCancelMsg is emitted when the user presses esc.
type ManualCancelMsg struct{}

// ManualErrorMsg carries input that could not be parsed. The prompt stays open.
type ManualErrorMsg struct{ Err error }

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

var manualHints = []string{
	"45m                  today, 45 minutes",
	"1:05:00              today, H:MM:SS",
	"2026-10-14 20m30s    a past day",
}

// ManualEntry is the backfill prompt backed by bubbles/textinput.
type ManualEntry struct {
	input   textinput.Model
	visible bool
	today   string
	err     string
	width   int
}

func NewManualEntry() ManualEntry {
	ti := textinput.New()
	ti.Placeholder = "[YYYY-MM-DD] duration"
	ti.CharLimit = 64
	return ManualEntry{input: ti}
}

func (p ManualEntry) Visible() bool { return p.visible }

// Open shows the prompt for a draft dated today and returns the focus command.
func (p *ManualEntry) Open(today string) tea.Cmd {
	p.visible = true
	p.today = today
	p.err = ""
	p.input.SetValue("")
	return p.input.Focus()
}

// Reopen shows the prompt again after a failed save, keeping the input.
func (p *ManualEntry) Reopen(reason string) tea.Cmd {
	p.visible = true
	p.err = reason
	return p.input.Focus()
}

func (p *ManualEntry) SetWidth(w int) { p.width = w }

func (p ManualEntry) Update(msg tea.Msg) (ManualEntry, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return ManualCancelMsg{} }
		case "enter":
			parsed, err := ParseManual(p.input.Value(), p.today)
			if err != nil {
				p.err = err.Error()
				return p, func() tea.Msg { return ManualErrorMsg{Err: err} }
			}
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return parsed }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p ManualEntry) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Manual Entry") + "  " + theme.Muted.Render(p.today) + "\n")
	sb.WriteString("> " + p.input.View() + "\n\n")
	for _, h := range manualHints {
		sb.WriteString(hintStyle.Render("  "+h) + "\n")
	}
	if p.err != "" {
		sb.WriteString("\n" + theme.Bad.Render(p.err) + "\n")
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}

// ParseManual reads "[YYYY-MM-DD] duration". The duration is either H:MM:SS,
// M:SS, or unit form such as 1h20m or 45m10s. A missing date means today.
func ParseManual(input, today string) (ManualSubmitMsg, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ManualSubmitMsg{}, fmt.Errorf("enter a duration")
	}
	out := ManualSubmitMsg{Date: today}
	if len(fields) == 2 {
		if _, err := time.Parse("2006-01-02", fields[0]); err != nil {
			return ManualSubmitMsg{}, fmt.Errorf("date %q must be YYYY-MM-DD", fields[0])
		}
		out.Date = fields[0]
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return ManualSubmitMsg{}, fmt.Errorf("expected [date] duration")
	}
	total, err := duration.Parse(fields[0])
	if err != nil {
		return ManualSubmitMsg{}, err
	}
	out.Hours, out.Minutes, out.Seconds = duration.Split(total)
	return out, nil
}
