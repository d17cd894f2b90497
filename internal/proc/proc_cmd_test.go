package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProc(t *testing.T, root string, pid int, cmdline string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644))
}

func TestProcFSProcesses(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, 10, "sync\x00sync.py\x00")
	writeProc(t, root, 11, "/usr/bin/python3\x00-m\x00http.server\x00")
	// kernel thread
	writeProc(t, root, 12, "")
	// title rewritten by the process itself
	writeProc(t, root, 13, "nginx: worker process\x00")
	writeProc(t, root, 14, "\x00late\x00")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "self"), 0o755))
	// exited mid-walk
	require.NoError(t, os.MkdirAll(filepath.Join(root, "99"), 0o755))

	procs, err := ProcFS{Root: root}.Processes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []Process{
		{PID: 10, Label: "sync"},
		{PID: 11, Label: "/usr/bin/python3"},
		{PID: 13, Label: "nginx:"},
		{PID: 14, Label: "late"},
	}, procs)
}

func TestProcFSMissingRoot(t *testing.T) {
	_, err := ProcFS{Root: filepath.Join(t.TempDir(), "nope")}.Processes()
	assert.Error(t, err)
}

func TestParsePS(t *testing.T) {
	out := []byte("    1 /sbin/init splash\n  200 sync sync.py\n  201\n  abc def\n 3021 workers --n 2\n")
	assert.Equal(t, []Process{
		{PID: 1, Label: "/sbin/init"},
		{PID: 200, Label: "sync"},
		{PID: 3021, Label: "workers"},
	}, parsePS(out))
}

type staticTable struct {
	procs []Process
	err   error
}

func (s staticTable) Processes() ([]Process, error) { return s.procs, s.err }

func TestFallbackUsesSecondaryOnError(t *testing.T) {
	f := Fallback{
		Primary:   staticTable{err: os.ErrNotExist},
		Secondary: staticTable{procs: []Process{{PID: 5, Label: "x"}}},
	}
	procs, err := f.Processes()
	require.NoError(t, err)
	assert.Equal(t, []Process{{PID: 5, Label: "x"}}, procs)

	f.Secondary = staticTable{err: os.ErrPermission}
	_, err = f.Processes()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, os.ErrPermission)
}
