package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/hnsearch/internal/listview"
	"github.com/fragmede/hnsearch/internal/search"
	"github.com/fragmede/hnsearch/internal/ui/messages"
	"github.com/fragmede/hnsearch/internal/ui/statusbar"
	"github.com/fragmede/hnsearch/internal/ui/storylist"
)

// Focus identifies the pane receiving keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// Options are optional collaborators for App.
type Options struct {
	Logger *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	focus Focus

	input     textinput.Model
	spinner   spinner.Model
	results   storylist.Model
	statusBar statusbar.Model

	session *search.Session
	log     *slog.Logger

	width  int
	height int
}

// NewApp creates the root application model around a session.
func NewApp(session *search.Session, opts Options) *App {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "search stories"
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(session.Term())
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		focus:     FocusInput,
		input:     ti,
		spinner:   sp,
		results:   storylist.New(),
		statusBar: statusbar.New(),
		session:   session,
		log:       logger,
	}
	a.statusBar.SetMode(session.Mode())
	return a
}

// Init starts the first fetch for the persisted query.
func (a *App) Init() tea.Cmd {
	req := a.session.Start()
	a.sync()
	return tea.Batch(textinput.Blink, a.spinner.Tick, a.fetch(req))
}

// fetch runs req off the UI goroutine and reports back with a message.
func (a *App) fetch(req search.Request) tea.Cmd {
	session := a.session
	return func() tea.Msg {
		return messages.FetchResultMsg{Result: session.Run(context.Background(), req)}
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(msg.Width-24, 10)
		a.results.SetSize(msg.Width, max(msg.Height-a.chromeHeight(), 1))
		a.statusBar.SetSize(msg.Width)
		return a, nil

	case messages.FetchResultMsg:
		a.session.Complete(msg.Result)
		return a, a.sync()

	case messages.StatusMsg:
		if msg.IsError {
			a.log.Warn("status", "msg", msg.Text)
		}
		a.statusBar.SetStatus(msg.Text)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, Keys.ForceQuit) {
			return a, tea.Quit
		}
		if key.Matches(msg, Keys.ToggleMode) {
			return a, a.toggleMode()
		}
		if a.focus == FocusInput {
			return a.updateInput(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		// The key is consumed here either way; it never reaches the input.
		if !a.session.CanSubmit() {
			a.statusBar.SetStatus("type a search term first")
			return a, nil
		}
		req := a.session.Submit()
		a.statusBar.SetStatus("")
		a.setFocus(FocusList)
		return a, tea.Batch(a.sync(), a.fetch(req))

	case key.Matches(msg, Keys.SwitchPane), key.Matches(msg, Keys.Blur):
		a.setFocus(FocusList)
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if v := a.input.Value(); v != before {
		a.session.TypeTerm(v)
		return a, tea.Batch(cmd, a.sync())
	}
	return a, cmd
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, Keys.SwitchPane), key.Matches(msg, Keys.Search):
		return a, a.setFocus(FocusInput)

	case key.Matches(msg, Keys.Remove):
		if it, ok := a.results.Selected(); ok {
			a.log.Debug("removing story", "id", it.ID)
			a.session.Remove(it.ID)
			return a, a.sync()
		}
		return a, nil

	case key.Matches(msg, Keys.Refresh):
		req := a.session.Refresh()
		return a, tea.Batch(a.sync(), a.fetch(req))

	case key.Matches(msg, Keys.OpenURL):
		if it, ok := a.results.Selected(); ok && it.URL != "" {
			a.statusBar.SetStatus("Opening: " + it.URL)
			return a, openBrowser(it.URL)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.results, cmd = a.results.Update(msg)
	return a, cmd
}

func (a *App) setFocus(f Focus) tea.Cmd {
	a.focus = f
	if f == FocusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

func (a *App) toggleMode() tea.Cmd {
	next := listview.ClientFiltered
	if a.session.Mode() == listview.ClientFiltered {
		next = listview.ServerFiltered
	}
	a.session.SetMode(next)
	a.statusBar.SetMode(next)
	return a.sync()
}

// sync recomputes the visible list from the session.
func (a *App) sync() tea.Cmd {
	st := a.session.State()
	visible := a.session.Visible()

	a.results.SetStale(st.IsLoading || st.IsError)
	a.results.SetTitle(listTitle(a.session))
	a.statusBar.SetState(st.Status(), len(visible), len(st.Items))
	return a.results.SetItems(visible)
}

func listTitle(s *search.Session) string {
	term := s.Active().Term
	if term == "" {
		term = "front page"
	}
	if s.Mode() == listview.ClientFiltered && s.Term() != "" {
		return fmt.Sprintf("Stories for %q, filtered by %q", term, s.Term())
	}
	return fmt.Sprintf("Stories for %q", term)
}

// chromeHeight is the number of rows not available to the results list.
func (a *App) chromeHeight() int {
	// header, search line, indicator line, status bar
	return 4
}

// View renders the application.
func (a *App) View() string {
	st := a.session.State()

	header := HeaderStyle.Render("My Hacker Stories")

	submit := SubmitDisabledStyle.Render("Submit")
	if a.session.CanSubmit() {
		submit = SubmitStyle.Render("Submit")
	}
	searchLine := LabelStyle.Render("Search: ") + a.input.View() + " " + submit

	var indicator string
	switch {
	case st.IsError:
		indicator = ErrorStyle.Render("Data could not be loaded.")
	case st.IsLoading:
		indicator = a.spinner.View() + " Loading data ..."
	default:
		var help []string
		for _, b := range Keys.HelpLine() {
			help = append(help, b.Help().Key+" "+b.Help().Desc)
		}
		indicator = DimStyle.Render(strings.Join(help, " • "))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		searchLine,
		indicator,
		a.results.View(),
		a.statusBar.View(),
	)
}

func openBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		default:
			return messages.StatusMsg{Text: "no browser opener for " + runtime.GOOS, IsError: true}
		}
		if err := cmd.Run(); err != nil {
			return messages.StatusMsg{Text: "open failed: " + err.Error(), IsError: true}
		}
		return messages.StatusMsg{Text: "Opened: " + url}
	}
}
