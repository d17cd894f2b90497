package registry

// Service is a named shell command tracked by the registry.
type Service struct {
	Name    string
	Command string
}

// Status is the liveness of a service at the moment it was probed.
type Status int

const (
	Inactive Status = iota
	Active
)

func (s Status) String() string {
	if s == Active {
		return "Active"
	}
	return "Inactive"
}

// Entry is one row of a listing.
type Entry struct {
	Service
	Status Status
}

// Listing is a point-in-time snapshot of the registry with statuses.
type Listing struct {
	Entries []Entry
	Total   int
	Active  int
}

// Matcher reports whether a process labelled with name is running.
type Matcher interface {
	IsActive(name string) bool
}
