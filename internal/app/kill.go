package app

import (
	"demonify/internal/registry"
)

// Kill terminates the running instance of a service. The registry is not
// consulted: any process carrying the label is signalled.
func (a *App) Kill(rawName string) error {
	name, err := registry.NormalizeName(rawName)
	if err != nil {
		return err
	}
	return a.launcher.Kill(name)
}
