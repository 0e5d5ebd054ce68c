package driver

import (
	"fmt"
	"sort"
	"sync"
)

// Manager keeps track of registered devices.
type Manager struct {
	mu      sync.Mutex
	devices map[string]Device
}

var defaultManager = NewManager()

// GetManager returns the process wide manager. Backends register into it
// from their Register functions.
func GetManager() *Manager {
	return defaultManager
}

// NewManager creates an empty manager. Tests use private managers to control
// exactly which devices exist.
func NewManager() *Manager {
	return &Manager{devices: make(map[string]Device)}
}

// Register wraps a and adds it to the registry.
func (m *Manager) Register(a Adapter, info Info) error {
	if a == nil {
		return fmt.Errorf("driver: cannot register a nil adapter")
	}
	d := wrapAdapter(a, info)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices[d.ID()] = d
	return nil
}

// Query returns all devices satisfying f, ordered by label then ID for
// deterministic results.
func (m *Manager) Query(f FilterFn) []Device {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]Device, 0)
	for _, d := range m.devices {
		if f(d) {
			results = append(results, d)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		li, lj := results[i].Info().Label, results[j].Info().Label
		if li != lj {
			return li < lj
		}
		return results[i].ID() < results[j].ID()
	})
	return results
}
