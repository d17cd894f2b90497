package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
)

// Finder is the subset of Matcher the launcher relies on.
type Finder interface {
	IsActive(name string) bool
	Find(name string) ([]int, error)
}

// LauncherOptions configures a Launcher.
type LauncherOptions struct {
	// Shell runs the "exec -a" indirection; it must support exec -a.
	Shell string
	// Dir is where processes start and <name>.log is written. Empty means
	// the current working directory.
	Dir string
	// Signal is sent by Kill. Zero means SIGTERM.
	Signal syscall.Signal
	Logger *log.Logger
}

// Launcher starts and stops labelled service processes.
type Launcher struct {
	finder Finder
	shell  string
	dir    string
	sig    syscall.Signal
	logger *log.Logger

	// swapped in tests
	launch   func(shell, dir, name, command, logPath string) error
	lookPath func(file string) (string, error)
	signal   func(pid int, sig syscall.Signal) error
}

// NewLauncher returns a launcher that checks liveness through finder.
func NewLauncher(finder Finder, opts LauncherOptions) *Launcher {
	if opts.Shell == "" {
		opts.Shell = "bash"
	}
	if opts.Signal == 0 {
		opts.Signal = syscall.SIGTERM
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Launcher{
		finder:   finder,
		shell:    opts.Shell,
		dir:      opts.Dir,
		sig:      opts.Signal,
		logger:   opts.Logger,
		launch:   launchDetached,
		lookPath: exec.LookPath,
		signal:   sendSignal,
	}
}

// LogPath returns the file a service's output is appended to.
func (l *Launcher) LogPath(name string) string {
	return filepath.Join(l.dir, name+".log")
}

// Spawn starts command in the background with its label forced to name
// and stdout/stderr appended to <name>.log. It does not wait for the
// process.
func (l *Launcher) Spawn(name, command string) error {
	if l.finder.IsActive(name) {
		return &Error{Op: "spawn", Name: name, Kind: ErrAlreadyActive}
	}
	if err := l.checkExecutable(command); err != nil {
		return &Error{Op: "spawn", Name: name, Kind: ErrLaunch, Err: err}
	}
	logPath := l.LogPath(name)
	if err := l.launch(l.shell, l.dir, name, command, logPath); err != nil {
		return &Error{Op: "spawn", Name: name, Kind: ErrLaunch, Err: err}
	}
	l.logger.Debug("spawned service", "name", name, "command", command, "log", logPath)
	return nil
}

// Kill signals every process labelled name. Rejected signals are reported,
// not retried.
func (l *Launcher) Kill(name string) error {
	pids, err := l.finder.Find(name)
	if err != nil {
		l.logger.Debug("process table unavailable", "name", name, "error", err)
		return &Error{Op: "kill", Name: name, Kind: ErrNotRunning}
	}
	if len(pids) == 0 {
		return &Error{Op: "kill", Name: name, Kind: ErrNotRunning}
	}

	var errs []error
	for _, pid := range pids {
		if err := l.signal(pid, l.sig); err != nil {
			errs = append(errs, fmt.Errorf("pid %d: %w", pid, err))
			continue
		}
		l.logger.Debug("sent signal", "name", name, "pid", pid, "signal", l.sig)
	}
	if len(errs) > 0 {
		return &Error{Op: "kill", Name: name, Kind: ErrKill, Err: errors.Join(errs...)}
	}
	return nil
}

// checkExecutable resolves the program "exec -a" will run so a missing
// binary is reported here rather than only in the log file. Words the
// shell would expand are left for the shell.
func (l *Launcher) checkExecutable(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return errors.New("empty command")
	}
	prog := fields[0]
	if strings.ContainsAny(prog, "$`'~\\=*?[{(") {
		return nil
	}
	if strings.Contains(prog, "/") && !filepath.IsAbs(prog) && l.dir != "" {
		prog = filepath.Join(l.dir, prog)
	}
	if _, err := l.lookPath(prog); err != nil {
		return err
	}
	return nil
}
