package app

import (
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/log"

	"demonify/internal/proc"
)

const testFile = "services.sh"

type memFiles struct {
	data   map[string][]byte
	writes int
}

func (m *memFiles) ReadAll(path string) ([]byte, error) {
	data, ok := m.data[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memFiles) WriteAll(path string, data []byte) error {
	m.writes++
	m.data[path] = append([]byte(nil), data...)
	return nil
}

type liveNames map[string]bool

func (l liveNames) IsActive(name string) bool { return l[name] }

// fakeLauncher mirrors proc.Launcher preconditions over a liveNames table.
type fakeLauncher struct {
	live      liveNames
	spawned   map[string]string
	killed    []string
	launchErr error
	killErr   error
}

func (f *fakeLauncher) Spawn(name, command string) error {
	if f.live[name] {
		return &proc.Error{Op: "spawn", Name: name, Kind: proc.ErrAlreadyActive}
	}
	if f.launchErr != nil {
		return &proc.Error{Op: "spawn", Name: name, Kind: proc.ErrLaunch, Err: f.launchErr}
	}
	f.spawned[name] = command
	f.live[name] = true
	return nil
}

func (f *fakeLauncher) Kill(name string) error {
	if !f.live[name] {
		return &proc.Error{Op: "kill", Name: name, Kind: proc.ErrNotRunning}
	}
	if f.killErr != nil {
		return &proc.Error{Op: "kill", Name: name, Kind: proc.ErrKill, Err: f.killErr}
	}
	f.killed = append(f.killed, name)
	delete(f.live, name)
	return nil
}

func newTestApp(t *testing.T, content string, live liveNames) (*App, *memFiles, *fakeLauncher) {
	t.Helper()
	files := &memFiles{data: map[string][]byte{testFile: []byte(content)}}
	launcher := &fakeLauncher{live: live, spawned: make(map[string]string)}
	a := New(Options{
		ServiceFile: testFile,
		Files:       files,
		Matcher:     live,
		Launcher:    launcher,
		Logger:      log.New(io.Discard),
	})
	return a, files, launcher
}
