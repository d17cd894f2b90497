package app

import (
	"demonify/internal/registry"
)

// Spawn starts the registered command for a service.
func (a *App) Spawn(rawName string) error {
	name, err := registry.NormalizeName(rawName)
	if err != nil {
		return err
	}
	reg, err := a.Load()
	if err != nil {
		return err
	}
	return a.spawn(reg, name)
}

func (a *App) spawn(reg *registry.Registry, name string) error {
	command, ok := reg.Get(name)
	if !ok {
		return &registry.ServiceError{Op: "spawn", Name: name, Err: registry.ErrNotFound}
	}
	return a.launcher.Spawn(name, command)
}
