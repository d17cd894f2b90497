package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"demonify/internal/config"
	"demonify/internal/proc"
	"demonify/internal/registry"
)

// Matcher answers liveness questions about service names.
type Matcher interface {
	IsActive(name string) bool
}

// Launcher starts and stops service processes.
type Launcher interface {
	Spawn(name, command string) error
	Kill(name string) error
}

// Options configures the top-level controller.
type Options struct {
	// ServiceFile is the registry file operated on; it must exist.
	ServiceFile string
	Files       registry.Files
	Matcher     Matcher
	Launcher    Launcher
	Logger      *log.Logger
}

// App exposes high-level operations that the CLI/TUI can reuse. Every
// operation reads the service file fresh.
type App struct {
	path     string
	files    registry.Files
	matcher  Matcher
	launcher Launcher
	logger   *log.Logger
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	if opts.Files == nil {
		opts.Files = registry.OSFiles{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &App{
		path:     opts.ServiceFile,
		files:    opts.Files,
		matcher:  opts.Matcher,
		launcher: opts.Launcher,
		logger:   opts.Logger,
	}
}

// NewHost wires the controller to the real filesystem and process table.
func NewHost(serviceFile string, cfg config.Config, logger *log.Logger) (*App, error) {
	sig, err := proc.ParseSignal(cfg.KillSignal)
	if err != nil {
		return nil, fmt.Errorf("kill signal: %w", err)
	}
	matcher := proc.NewMatcher(proc.HostTable(cfg.ProcRoot), logger)
	launcher := proc.NewLauncher(matcher, proc.LauncherOptions{
		Shell:  cfg.Shell,
		Signal: sig,
		Logger: logger,
	})
	return New(Options{
		ServiceFile: serviceFile,
		Matcher:     matcher,
		Launcher:    launcher,
		Logger:      logger,
	}), nil
}

// ServiceFile returns the registry file path.
func (a *App) ServiceFile() string {
	return a.path
}

// Load parses the service file.
func (a *App) Load() (*registry.Registry, error) {
	reg, err := registry.Load(a.files, a.path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded service file", "path", a.path, "entries", reg.Len())
	return reg, nil
}

func (a *App) save(reg *registry.Registry) error {
	if err := registry.Save(a.files, a.path, reg); err != nil {
		return err
	}
	a.logger.Debug("wrote service file", "path", a.path, "entries", reg.Len())
	return nil
}
