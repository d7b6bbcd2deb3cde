package levels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rewarddto "prayerlog/internal/modules/reward/dto"
	"prayerlog/internal/ui/theme"
)

// Model shows every level with its threshold and the user's progress.
type Model struct {
	levels   []rewarddto.LevelOutput
	viewport viewport.Model
	width    int
	height   int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1, 2)
	return Model{viewport: vp}
}

func (m *Model) SetLevels(levels []rewarddto.LevelOutput) {
	m.levels = levels
	m.viewport.SetContent(m.render())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.viewport.Width = size.Width
		m.viewport.Height = size.Height
		m.viewport.SetContent(m.render())
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) render() string {
	if len(m.levels) == 0 {
		return theme.Muted.Render("No levels configured")
	}
	barW := max(10, min(40, m.width-50))
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Levels") + "\n\n")
	for _, l := range m.levels {
		marker := theme.Muted.Render("○")
		title := theme.Muted.Render(l.Title)
		if l.Unlocked {
			marker = theme.Good.Render("●")
			title = l.Title
		}
		sb.WriteString(fmt.Sprintf("%s  %-2d %-20s %s  %s\n",
			marker, l.Level, title, theme.Muted.Render(fmt.Sprintf("%3d pts  %-8s", l.TotalPoints, l.TimeEquivalent)),
			theme.Bar(l.Progress.Percentage, barW)))
	}
	return sb.String()
}
