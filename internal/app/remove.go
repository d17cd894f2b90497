package app

import (
	"demonify/internal/registry"
)

// Remove stops tracking a service and rewrites the service file. A running
// instance is not touched.
func (a *App) Remove(rawName string) error {
	name, err := registry.NormalizeName(rawName)
	if err != nil {
		return err
	}
	reg, err := a.Load()
	if err != nil {
		return err
	}
	return a.remove(reg, name)
}

func (a *App) remove(reg *registry.Registry, name string) error {
	if err := reg.Remove(name); err != nil {
		return err
	}
	return a.save(reg)
}
