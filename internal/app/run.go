package app

import (
	"errors"
	"fmt"

	"demonify/internal/registry"
)

// ErrSkipped marks an action that did not run because a step it depends
// on failed.
var ErrSkipped = errors.New("skipped")

// Request is one invocation of the legacy command line: at most one of
// Add/Remove, at most one of Spawn/Kill, optionally List.
type Request struct {
	Name    string
	Command string

	Add    bool
	Remove bool
	Spawn  bool
	Kill   bool
	List   bool
}

// Report collects non-fatal outcomes in the order they happened.
type Report struct {
	Events  []Event
	Listing *registry.Listing
}

func (r *Report) record(action Action, name string, err error) {
	r.Events = append(r.Events, Event{Action: action, Name: name, Err: err})
}

func (req Request) validate() error {
	switch {
	case !req.Add && !req.Remove && !req.Spawn && !req.Kill && !req.List:
		return fmt.Errorf("%w: one of add, remove, list, spawn or kill is required", ErrUsage)
	case req.Add && req.Remove:
		return fmt.Errorf("%w: add and remove cannot be combined", ErrUsage)
	case req.Spawn && req.Kill:
		return fmt.Errorf("%w: spawn and kill cannot be combined", ErrUsage)
	case req.Add && req.Command == "":
		return fmt.Errorf("%w: add requires a command", ErrUsage)
	case req.needsName() && req.Name == "":
		return fmt.Errorf("%w: a service name is required", ErrUsage)
	}
	return nil
}

func (req Request) needsName() bool {
	return req.Add || req.Remove || req.Spawn || req.Kill
}

// Run performs the requested actions in order: add or remove, then spawn
// or kill, then list. The returned error is fatal; reported failures are
// in the Report. File and format errors abort before anything is written.
func (a *App) Run(req Request) (Report, error) {
	var rep Report
	if err := req.validate(); err != nil {
		return rep, err
	}

	var name string
	if req.needsName() {
		var err error
		if name, err = registry.NormalizeName(req.Name); err != nil {
			return rep, err
		}
	}

	reg, err := a.Load()
	if err != nil {
		return rep, err
	}

	addFailed := false
	switch {
	case req.Add:
		err := a.add(reg, name, req.Command)
		if IsFatal(err) {
			return rep, err
		}
		addFailed = err != nil
		rep.record(ActionAdd, name, err)
	case req.Remove:
		err := a.remove(reg, name)
		if IsFatal(err) {
			return rep, err
		}
		rep.record(ActionRemove, name, err)
	}

	switch {
	case req.Spawn && addFailed:
		rep.record(ActionSpawn, name, fmt.Errorf("%w: add did not succeed", ErrSkipped))
	case req.Spawn:
		err := a.spawn(reg, name)
		if IsFatal(err) {
			return rep, err
		}
		rep.record(ActionSpawn, name, err)
	case req.Kill:
		err := a.launcher.Kill(name)
		if IsFatal(err) {
			return rep, err
		}
		rep.record(ActionKill, name, err)
	}

	if req.List {
		listing := reg.List(a.matcher)
		rep.Listing = &listing
	}
	return rep, nil
}
