package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"demonify/internal/proc"
)

const (
	defaultShell      = "bash"
	defaultProcRoot   = "/proc"
	defaultKillSignal = "TERM"
	defaultLogLevel   = "warn"

	envShell      = "DEMONIFY_SHELL"
	envProcRoot   = "DEMONIFY_PROC_ROOT"
	envKillSignal = "DEMONIFY_KILL_SIGNAL"
	envLogLevel   = "DEMONIFY_LOG_LEVEL"
)

// Config aggregates host-facing tunables.
type Config struct {
	// Shell runs "exec -a" when spawning; it must be bash-compatible.
	Shell string
	// ProcRoot is the procfs mount used to read the process table.
	ProcRoot string
	// KillSignal is the signal name sent by kill.
	KillSignal string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Shell:      defaultShell,
		ProcRoot:   defaultProcRoot,
		KillSignal: defaultKillSignal,
		LogLevel:   defaultLogLevel,
	}
}

// Load builds a Config from an optional YAML (or JSON) file plus
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		merge(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Level returns the parsed log level, defaulting to warn.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func merge(dst *Config, src Config) {
	if src.Shell != "" {
		dst.Shell = src.Shell
	}
	if src.ProcRoot != "" {
		dst.ProcRoot = src.ProcRoot
	}
	if src.KillSignal != "" {
		dst.KillSignal = src.KillSignal
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envShell)); v != "" {
		cfg.Shell = v
	}
	if v := strings.TrimSpace(os.Getenv(envProcRoot)); v != "" {
		cfg.ProcRoot = v
	}
	if v := os.Getenv(envKillSignal); v != "" {
		if _, err := proc.ParseSignal(v); err == nil {
			cfg.KillSignal = v
		} else {
			log.Warn("ignoring invalid environment value", "var", envKillSignal, "value", v, "error", err)
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		if _, err := log.ParseLevel(v); err == nil {
			cfg.LogLevel = v
		} else {
			log.Warn("ignoring invalid environment value", "var", envLogLevel, "value", v, "error", err)
		}
	}
}

type fileConfig struct {
	Shell      string `yaml:"shell"`
	ProcRoot   string `yaml:"proc_root"`
	KillSignal string `yaml:"kill_signal"`
	LogLevel   string `yaml:"log_level"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.KillSignal != "" {
		if _, err := proc.ParseSignal(raw.KillSignal); err != nil {
			return cfg, fmt.Errorf("parse kill_signal: %w", err)
		}
	}
	if raw.LogLevel != "" {
		if _, err := log.ParseLevel(raw.LogLevel); err != nil {
			return cfg, fmt.Errorf("parse log_level: %w", err)
		}
	}
	if strings.ContainsAny(raw.Shell, " \t") {
		return cfg, errors.New("shell must be a single executable path")
	}

	cfg.Shell = raw.Shell
	cfg.ProcRoot = raw.ProcRoot
	cfg.KillSignal = raw.KillSignal
	cfg.LogLevel = raw.LogLevel
	return cfg, nil
}
