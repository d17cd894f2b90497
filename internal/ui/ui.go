// Package ui renders command output for the terminal.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"demonify/internal/app"
	"demonify/internal/proc"
	"demonify/internal/registry"
)

// Printer writes one-line messages and listings to an output stream.
type Printer struct {
	out      io.Writer
	bold     lipgloss.Style
	italic   lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	warn     lipgloss.Style
}

// New returns a printer for out. With color disabled all styles are plain.
func New(out io.Writer, color bool) *Printer {
	p := &Printer{
		out:      out,
		bold:     lipgloss.NewStyle(),
		italic:   lipgloss.NewStyle(),
		active:   lipgloss.NewStyle(),
		inactive: lipgloss.NewStyle(),
		warn:     lipgloss.NewStyle(),
	}
	if color {
		p.bold = p.bold.Bold(true)
		p.italic = p.italic.Bold(true).Italic(true)
		p.active = p.active.Bold(true).Foreground(lipgloss.Color("42"))
		p.inactive = p.inactive.Bold(true).Foreground(lipgloss.Color("203"))
		p.warn = p.warn.Foreground(lipgloss.Color("214"))
	}
	return p
}

// Events prints one line per action outcome.
func (p *Printer) Events(events []app.Event) {
	for _, ev := range events {
		fmt.Fprintln(p.out, p.Message(ev))
	}
}

// Message renders a single action outcome.
func (p *Printer) Message(ev app.Event) string {
	name := p.bold.Render(ev.Name)
	if ev.Err == nil {
		switch ev.Action {
		case app.ActionAdd:
			return fmt.Sprintf("Service entry %s successfully added.", name)
		case app.ActionRemove:
			return fmt.Sprintf("Service entry %s successfully removed.", name)
		case app.ActionSpawn:
			return fmt.Sprintf("Successfully spawned process %s.", name)
		case app.ActionKill:
			return fmt.Sprintf("Successfully killed process %s.", name)
		}
		return fmt.Sprintf("%s %s: ok", ev.Action, name)
	}
	return p.warn.Render(Explain(ev.Action, ev.Name, ev.Err))
}

// Explain turns an action error into a one-line, user-facing sentence.
func Explain(action app.Action, name string, err error) string {
	var se *registry.ServiceError
	switch {
	case errors.Is(err, registry.ErrDuplicateEntry):
		detail := ""
		if errors.As(err, &se) && se.Detail != "" {
			detail = " Its " + se.Detail + "."
		}
		return fmt.Sprintf("An entry for the service name %s already exists.%s To update it, remove %s first.", name, detail, name)
	case errors.Is(err, registry.ErrNotFound):
		return fmt.Sprintf("No entry was found for the service name %s.", name)
	case errors.Is(err, registry.ErrNameCollision):
		return fmt.Sprintf("There is already a running process named %s. To avoid conflicts, please choose a different name.", name)
	case errors.Is(err, proc.ErrAlreadyActive):
		return fmt.Sprintf("Process %s is already running.", name)
	case errors.Is(err, proc.ErrNotRunning):
		return fmt.Sprintf("Unable to locate process %s. Was it started?", name)
	case errors.Is(err, proc.ErrLaunch):
		return fmt.Sprintf("Failed to spawn process %s: %s", name, cause(err))
	case errors.Is(err, proc.ErrKill):
		return fmt.Sprintf("Failed to kill process %s: %s", name, cause(err))
	case errors.Is(err, app.ErrSkipped):
		return fmt.Sprintf("Not spawning %s because the entry was not added.", name)
	}
	return fmt.Sprintf("%s %s: %v", action, name, err)
}

// Fatal renders an error that ends the invocation.
func Fatal(err error) string {
	switch {
	case errors.Is(err, registry.ErrIO):
		return fmt.Sprintf("Error accessing the service file. Does the file exist? (%s)", cause(err))
	case errors.Is(err, registry.ErrFormat):
		return fmt.Sprintf("%v. Aborting.", err)
	case errors.Is(err, registry.ErrInvalidName):
		return fmt.Sprintf("%v. Process names have a maximum length of %d and may use letters, digits, '-' and '_'.", err, registry.MaxNameLen)
	}
	var se *registry.ServiceError
	if errors.As(err, &se) {
		return Explain(app.Action(se.Op), se.Name, err)
	}
	var pe *proc.Error
	if errors.As(err, &pe) {
		return Explain(app.Action(pe.Op), pe.Name, err)
	}
	return err.Error()
}

// Listing prints the service table and a summary line.
func (p *Printer) Listing(l registry.Listing) {
	fmt.Fprintf(p.out, "%-16s\t%-40s %8s\n\n", "Name", "Command", "Status")
	for _, e := range l.Entries {
		status := p.inactive
		if e.Status == registry.Active {
			status = p.active
		}
		fmt.Fprintf(p.out, "%s\t%s %s\n",
			p.bold.Render(pad(e.Name, 16)),
			p.italic.Render(pad(e.Command, 40)),
			status.Render(fmt.Sprintf("%8s", e.Status)),
		)
	}
	fmt.Fprintf(p.out, "\n(%d entries | %d active)\n", l.Total, l.Active)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func cause(err error) string {
	var pe *proc.Error
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	var path *registry.PathError
	if errors.As(err, &path) {
		return path.Err.Error()
	}
	return err.Error()
}
