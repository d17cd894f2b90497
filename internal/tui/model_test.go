package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demonify/internal/app"
	"demonify/internal/proc"
	"demonify/internal/registry"
)

type stubController struct {
	listing registry.Listing
	listErr error
	spawned []string
	killed  []string
	killErr error
}

func (s *stubController) ServiceFile() string { return "/srv/services.sh" }

func (s *stubController) List() (registry.Listing, error) { return s.listing, s.listErr }

func (s *stubController) Spawn(name string) error {
	s.spawned = append(s.spawned, name)
	return nil
}

func (s *stubController) Kill(name string) error {
	s.killed = append(s.killed, name)
	return s.killErr
}

func sampleListing() registry.Listing {
	return registry.Listing{
		Entries: []registry.Entry{
			{Service: registry.Service{Name: "sync", Command: "python3 sync.py"}, Status: registry.Active},
			{Service: registry.Service{Name: "web", Command: "./web"}, Status: registry.Inactive},
		},
		Total:  2,
		Active: 1,
	}
}

func loaded(t *testing.T, ctrl *stubController) *Model {
	t.Helper()
	m := New(ctrl, nil)
	msg := loadServicesCmd(ctrl)()
	_, _ = m.Update(msg)
	return m
}

func TestModelLoadsListing(t *testing.T) {
	ctrl := &stubController{listing: sampleListing()}
	m := loaded(t, ctrl)

	assert.False(t, m.loading)
	assert.Len(t, m.list.Items(), 2)
	assert.Equal(t, "/srv/services.sh (2 entries | 1 active)", m.statusMsg)

	view := m.View()
	assert.Contains(t, view, `record=bash -c "exec -a sync python3 sync.py &>> sync.log &" # sync`)
}

func TestModelLoadError(t *testing.T) {
	ctrl := &stubController{listErr: &registry.PathError{Op: "read", Path: "x", Err: errors.New("denied")}}
	m := loaded(t, ctrl)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Does the file exist?")
}

func TestModelSpawnAndKillKeys(t *testing.T) {
	ctrl := &stubController{listing: sampleListing(), killErr: &proc.Error{Op: "kill", Name: "sync", Kind: proc.ErrNotRunning}}
	m := loaded(t, ctrl)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	done := cmd()
	assert.Equal(t, []string{"sync"}, ctrl.spawned)

	_, cmd = m.Update(done)
	require.NotNil(t, cmd)
	assert.Equal(t, "Spawned sync.", m.statusMsg)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())
	assert.Equal(t, []string{"sync"}, ctrl.killed)
	assert.Equal(t, "Unable to locate process sync. Was it started?", m.statusMsg)
}

func TestModelNoSelectionWhenEmpty(t *testing.T) {
	ctrl := &stubController{}
	m := loaded(t, ctrl)

	assert.Nil(t, m.currentEntry())
	assert.Contains(t, m.View(), "No services registered.")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Empty(t, ctrl.spawned)
}

func TestWaitForChangeFiltersOtherFiles(t *testing.T) {
	events := make(chan fsnotify.Event, 3)
	path := filepath.Join("/srv", "services.sh")
	events <- fsnotify.Event{Name: "/srv/web.log", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Create}

	msg := waitForChangeCmd(events, path)()
	assert.Equal(t, fileChangedMsg{}, msg)
	assert.Nil(t, waitForChangeCmd(nil, path))
}

func TestServiceItem(t *testing.T) {
	item := serviceItem{Entry: sampleListing().Entries[1]}
	assert.Equal(t, "web (Inactive)", item.Title())
	assert.Equal(t, "./web", item.Description())
	assert.True(t, strings.HasPrefix(item.FilterValue(), "web"))
}

func TestActionCmdUnsupported(t *testing.T) {
	msg := actionCmd(&stubController{}, app.ActionList, "web")()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	assert.Error(t, done.err)
}
