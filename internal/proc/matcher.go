package proc

import (
	"github.com/charmbracelet/log"
)

// Matcher finds processes by exact label. A process labelled "workers"
// never matches "worker".
type Matcher struct {
	table  Table
	logger *log.Logger
}

// NewMatcher returns a matcher over table. A nil logger uses log.Default().
func NewMatcher(table Table, logger *log.Logger) *Matcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Matcher{table: table, logger: logger}
}

// IsActive reports whether any live process carries name as its label.
// The table is read fresh on every call; read failures count as inactive.
func (m *Matcher) IsActive(name string) bool {
	pids, err := m.Find(name)
	if err != nil {
		m.logger.Debug("process table unavailable", "name", name, "error", err)
		return false
	}
	return len(pids) > 0
}

// Find returns the PIDs of every live process labelled name.
func (m *Matcher) Find(name string) ([]int, error) {
	procs, err := m.table.Processes()
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, p := range procs {
		if p.Label == name {
			pids = append(pids, p.PID)
		}
	}
	m.logger.Debug("scanned process table", "name", name, "processes", len(procs), "matches", len(pids))
	return pids, nil
}
