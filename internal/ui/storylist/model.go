package storylist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/hnsearch/internal/story"
)

// Model is the search results list.
type Model struct {
	list   list.Model
	width  int
	height int
}

// New creates an empty results list. Filtering is done upstream, so the
// list's own filter is disabled.
func New() Model {
	l := list.New(nil, Delegate{}, 0, 0)
	l.Title = "Stories"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("story", "stories")

	return Model{list: l}
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h)
}

// SetTitle replaces the list heading.
func (m *Model) SetTitle(title string) {
	m.list.Title = title
}

// SetItems replaces the rows, keeping the cursor in range.
func (m *Model) SetItems(items []story.Item) tea.Cmd {
	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = StoryItem{Item: it, Index: i}
	}
	idx := m.list.Index()
	cmd := m.list.SetItems(rows)
	if idx >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}
	return cmd
}

// Selected returns the highlighted story.
func (m Model) Selected() (story.Item, bool) {
	if it, ok := m.list.SelectedItem().(StoryItem); ok {
		return it.Item, true
	}
	return story.Item{}, false
}

// Len is the number of rows.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.list.View()
}

// SetStale dims every row when the list no longer reflects the last fetch.
func (m *Model) SetStale(stale bool) {
	m.list.SetDelegate(Delegate{Stale: stale})
}
