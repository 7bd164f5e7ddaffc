package statusbar

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/hnsearch/internal/lifecycle"
	"github.com/fragmede/hnsearch/internal/listview"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF6600")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

type tab struct {
	label string
	mode  listview.Mode
}

var tabs = []tab{
	{"Server filter", listview.ServerFiltered},
	{"Client filter", listview.ClientFiltered},
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	mode       listview.Mode
	status     lifecycle.Status
	shown      int
	total      int
	statusText string
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetMode highlights the active filter mode.
func (m *Model) SetMode(mode listview.Mode) {
	m.mode = mode
}

// SetState records the fetch status and how many of the fetched items are
// visible.
func (m *Model) SetState(status lifecycle.Status, shown, total int) {
	m.status = status
	m.shown = shown
	m.total = total
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string) {
	m.statusText = text
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, t := range tabs {
		if t.mode == m.mode {
			tabsStr += activeTabStyle.Render(t.label)
		} else {
			tabsStr += inactiveTabStyle.Render(t.label)
		}
	}

	var right string
	if m.status == lifecycle.Failure {
		right += errorStyle.Render("ERROR")
	}
	if m.shown != m.total {
		right += countStyle.Render(fmt.Sprintf("%d/%d", m.shown, m.total))
	} else {
		right += countStyle.Render(fmt.Sprintf("%d", m.total))
	}
	right += statusTextStyle.Render(m.status.String())
	if m.statusText != "" {
		right += statusTextStyle.Render(m.statusText)
	}

	tabsWidth := lipgloss.Width(tabsStr)
	rightWidth := lipgloss.Width(right)
	gap := m.width - tabsWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
