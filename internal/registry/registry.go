package registry

import (
	"sort"
	"strings"
)

// Registry maps service names to their shell commands. It is a working
// copy for one invocation; the service file is the durable state.
type Registry struct {
	services map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{services: make(map[string]string)}
}

// Len returns the number of tracked services.
func (r *Registry) Len() int {
	return len(r.services)
}

// Get returns the command registered for name.
func (r *Registry) Get(name string) (string, bool) {
	cmd, ok := r.services[name]
	return cmd, ok
}

// Services returns every entry sorted by name.
func (r *Registry) Services() []Service {
	out := make([]Service, 0, len(r.services))
	for name, cmd := range r.services {
		out = append(out, Service{Name: name, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Add registers a new service. It refuses names already tracked and names
// that a live, untracked process already runs under, since a later spawn
// could not be told apart from that process.
func (r *Registry) Add(name, command string, m Matcher) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	name = strings.ToLower(name)
	command, err := NormalizeCommand(command)
	if err != nil {
		return err
	}

	if existing, ok := r.services[name]; ok {
		return &ServiceError{Op: "add", Name: name, Detail: "current command is " + existing, Err: ErrDuplicateEntry}
	}
	if m != nil && m.IsActive(name) {
		return &ServiceError{Op: "add", Name: name, Err: ErrNameCollision}
	}
	r.services[name] = command
	return nil
}

// Remove stops tracking name. Running processes are left alone.
func (r *Registry) Remove(name string) error {
	if _, ok := r.services[name]; !ok {
		return &ServiceError{Op: "remove", Name: name, Err: ErrNotFound}
	}
	delete(r.services, name)
	return nil
}

// List probes every service and returns a snapshot with aggregate counts.
func (r *Registry) List(m Matcher) Listing {
	services := r.Services()
	out := Listing{
		Entries: make([]Entry, 0, len(services)),
		Total:   len(services),
	}
	for _, s := range services {
		e := Entry{Service: s, Status: Inactive}
		if m != nil && m.IsActive(s.Name) {
			e.Status = Active
			out.Active++
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}
