package proc

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyActive indicates a process already runs under the service name.
	ErrAlreadyActive = errors.New("already active")

	// ErrNotRunning indicates no process runs under the service name.
	ErrNotRunning = errors.New("not running")

	// ErrLaunch indicates the service process could not be started.
	ErrLaunch = errors.New("launch failed")

	// ErrKill indicates the host rejected the termination request.
	ErrKill = errors.New("kill failed")
)

// Error ties a process control failure to a service name.
type Error struct {
	// Op is "spawn" or "kill".
	Op string
	// Name is the service name.
	Name string
	// Kind is one of the package sentinels.
	Kind error
	// Err is the underlying host error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Name, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
