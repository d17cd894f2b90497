package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrIO indicates the service file could not be read or written.
	ErrIO = errors.New("service file unreadable")

	// ErrFormat indicates the service file content is not a valid registry.
	ErrFormat = errors.New("file is poorly formatted")

	// ErrDuplicateEntry indicates the name is already tracked by the registry.
	ErrDuplicateEntry = errors.New("entry already exists")

	// ErrNotFound indicates the name is not tracked by the registry.
	ErrNotFound = errors.New("no entry found")

	// ErrNameCollision indicates an untracked host process already runs under the name.
	ErrNameCollision = errors.New("name used by a running process")

	// ErrInvalidName indicates the name fails the naming rules.
	ErrInvalidName = errors.New("invalid service name")

	// ErrInvalidCommand indicates the command cannot be embedded in a record line.
	ErrInvalidCommand = errors.New("invalid service command")
)

// FormatError reports a record line that failed to parse or validate.
type FormatError struct {
	// Line is the 1-based line number inside the service file.
	Line int
	// Field names the offending part of the record, if known.
	Field string
	// Reason describes the problem.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: line %d: %s: %s", ErrFormat, e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: line %d: %s", ErrFormat, e.Line, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// ServiceError ties a registry failure to the service it concerns.
type ServiceError struct {
	// Op is the registry operation ("add", "remove", ...).
	Op string
	// Name is the service name.
	Name string
	// Detail is extra context shown to the user, e.g. the existing command.
	Detail string
	// Err is the underlying sentinel.
	Err error
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %v (%s)", e.Op, e.Name, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// PathError reports a failed read or write of the service file.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
