package app

import (
	"demonify/internal/registry"
)

// AddParams configures service registration.
type AddParams struct {
	Name    string
	Command string
}

// Add registers a service and rewrites the service file.
func (a *App) Add(params AddParams) error {
	name, err := registry.NormalizeName(params.Name)
	if err != nil {
		return err
	}
	reg, err := a.Load()
	if err != nil {
		return err
	}
	return a.add(reg, name, params.Command)
}

func (a *App) add(reg *registry.Registry, name, command string) error {
	if err := reg.Add(name, command, a.matcher); err != nil {
		return err
	}
	return a.save(reg)
}
