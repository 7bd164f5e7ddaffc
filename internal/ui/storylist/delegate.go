package storylist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6600"))

	selectedDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC"))

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Width(4).
			Align(lipgloss.Right)
)

// Delegate renders a story as a title line and a meta line. Stale rows,
// left over from a failed or in-flight fetch, are dimmed.
type Delegate struct {
	Stale bool
}

func (d Delegate) Height() int                             { return 2 }
func (d Delegate) Spacing() int                            { return 1 }
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d Delegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(StoryItem)
	if !ok {
		return
	}

	idx := indexStyle.Render(fmt.Sprintf("%d.", item.Index+1))
	clip := lipgloss.NewStyle().MaxWidth(max(m.Width()-5, 10))

	var title, desc string
	switch {
	case index == m.Index():
		title = selectedTitleStyle.Render(item.Title())
		desc = selectedDescStyle.Render(item.Description())
	case d.Stale:
		title = staleStyle.Render(item.Title())
		desc = staleStyle.Render(item.Description())
	default:
		title = titleStyle.Render(item.Title())
		desc = descStyle.Render(item.Description())
	}

	fmt.Fprintf(w, "%s %s\n     %s", idx, clip.Render(title), clip.Render(desc))
}
