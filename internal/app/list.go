package app

import (
	"demonify/internal/registry"
)

// List returns every service with its status at the moment of the call.
func (a *App) List() (registry.Listing, error) {
	reg, err := a.Load()
	if err != nil {
		return registry.Listing{}, err
	}
	return reg.List(a.matcher), nil
}
