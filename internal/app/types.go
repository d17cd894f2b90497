package app

import (
	"errors"

	"demonify/internal/proc"
	"demonify/internal/registry"
)

// Action names one step of an invocation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionSpawn  Action = "spawn"
	ActionKill   Action = "kill"
	ActionList   Action = "list"
)

// Event describes the outcome of one action. A nil Err means success.
type Event struct {
	Action Action
	Name   string
	Err    error
}

// ErrUsage marks invalid action combinations or missing arguments.
var ErrUsage = errors.New("invalid usage")

// IsFatal reports whether err must end the invocation with a non-zero
// exit status. Everything else is reported and the invocation continues.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{
		ErrUsage,
		registry.ErrIO,
		registry.ErrFormat,
		registry.ErrInvalidName,
		registry.ErrInvalidCommand,
		registry.ErrNameCollision,
		proc.ErrAlreadyActive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
