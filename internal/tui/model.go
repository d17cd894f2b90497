package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"demonify/internal/app"
	"demonify/internal/registry"
	"demonify/internal/ui"
)

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	ServiceFile() string
	List() (registry.Listing, error)
	Spawn(name string) error
	Kill(name string) error
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller
	events     <-chan fsnotify.Event

	list    list.Model
	listing registry.Listing

	statusMsg string
	err       error
	loading   bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles. events may be nil, in
// which case the view only refreshes on demand.
func New(ctrl Controller, events <-chan fsnotify.Event) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Services"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	return &Model{
		controller: ctrl,
		events:     events,
		list:       lst,
		statusMsg:  "Loading " + ctrl.ServiceFile() + "…",
		loading:    true,
	}
}

// Run spins up the Bubble Tea program, reloading whenever the service file
// changes on disk.
func Run(ctrl Controller) error {
	var events <-chan fsnotify.Event
	watcher, err := watchFile(ctrl.ServiceFile())
	if err != nil {
		log.Debug("service file watch unavailable", "path", ctrl.ServiceFile(), "error", err)
	} else {
		defer watcher.Close()
		events = watcher.Events
	}

	m := New(ctrl, events)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}

// watchFile watches the parent directory, since atomic rewrites replace
// the file rather than writing to it.
func watchFile(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadServicesCmd(m.controller), waitForChangeCmd(m.events, m.controller.ServiceFile()))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 4 {
			m.list.SetSize(msg.Width, msg.Height-4)
		}

	case servicesLoadedMsg:
		m.loading = false
		m.err = nil
		m.listing = msg.listing
		items := make([]list.Item, 0, len(msg.listing.Entries))
		for _, e := range msg.listing.Entries {
			items = append(items, serviceItem{Entry: e})
		}
		m.list.SetItems(items)
		m.lastUpdated = time.Now()
		m.statusMsg = fmt.Sprintf("%s (%d entries | %d active)", m.controller.ServiceFile(), msg.listing.Total, msg.listing.Active)

	case fileChangedMsg:
		return m, tea.Batch(loadServicesCmd(m.controller), waitForChangeCmd(m.events, m.controller.ServiceFile()))

	case actionDoneMsg:
		if msg.err != nil {
			m.statusMsg = ui.Explain(msg.action, msg.name, msg.err)
		} else if msg.action == app.ActionSpawn {
			m.statusMsg = fmt.Sprintf("Spawned %s.", msg.name)
		} else {
			m.statusMsg = fmt.Sprintf("Killed %s.", msg.name)
		}
		return m, loadServicesCmd(m.controller)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadServicesCmd(m.controller)
		case "s":
			if e := m.currentEntry(); e != nil {
				return m, actionCmd(m.controller, app.ActionSpawn, e.Name)
			}
		case "x":
			if e := m.currentEntry(); e != nil {
				return m, actionCmd(m.controller, app.ActionKill, e.Name)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	if m.err != nil {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString("Loading services…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(ui.Fatal(m.err)))
		b.WriteByte('\n')
	}

	if len(m.list.Items()) == 0 && !m.loading && m.err == nil {
		b.WriteString("No services registered.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteByte('\n')
	}

	if current := m.currentEntry(); current != nil {
		detail := fmt.Sprintf("name=%s status=%s\ncmd=%s\nrecord=%s",
			current.Name,
			current.Status,
			current.Command,
			registry.FormatRecord(current.Service),
		)
		detailStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(detailStyle.Render(detail))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • r reload • s spawn • x kill"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last update %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// serviceItem adapts registry.Entry to the bubbles list item interface.
type serviceItem struct {
	registry.Entry
}

func (s serviceItem) Title() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Status)
}

func (s serviceItem) Description() string {
	return s.Command
}

func (s serviceItem) FilterValue() string {
	return s.Name + " " + s.Command
}

func (m *Model) currentEntry() *registry.Entry {
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.listing.Entries) {
		return nil
	}
	return &m.listing.Entries[idx]
}

type servicesLoadedMsg struct {
	listing registry.Listing
}

type fileChangedMsg struct{}

type actionDoneMsg struct {
	action app.Action
	name   string
	err    error
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func loadServicesCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		listing, err := ctrl.List()
		if err != nil {
			return errMsg{err}
		}
		return servicesLoadedMsg{listing: listing}
	}
}

func actionCmd(ctrl Controller, action app.Action, name string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch action {
		case app.ActionSpawn:
			err = ctrl.Spawn(name)
		case app.ActionKill:
			err = ctrl.Kill(name)
		default:
			err = errors.New("unsupported action")
		}
		return actionDoneMsg{action: action, name: name, err: err}
	}
}

// waitForChangeCmd blocks until the service file is written, renamed or
// recreated. It returns nil when there is nothing to watch.
func waitForChangeCmd(events <-chan fsnotify.Event, path string) tea.Cmd {
	if events == nil {
		return nil
	}
	target := filepath.Clean(path)
	return func() tea.Msg {
		for ev := range events {
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				return fileChangedMsg{}
			}
		}
		return nil
	}
}
