package runtime

import (
	"sort"
	"sync"

	"github.com/aretw0/statewalk/pkg/domain"
)

// StateMemory tracks which states are currently active. Safe for concurrent
// use; the executor writes it while observers (HTTP introspection, stores)
// read snapshots.
type StateMemory struct {
	mu     sync.RWMutex
	active map[domain.StateID]struct{}
}

// NewStateMemory creates an empty memory.
func NewStateMemory() *StateMemory {
	return &StateMemory{active: make(map[domain.StateID]struct{})}
}

// Activate marks a state active.
func (m *StateMemory) Activate(id domain.StateID) {
	m.mu.Lock()
	m.active[id] = struct{}{}
	m.mu.Unlock()
}

// Deactivate removes a state from the active set.
func (m *StateMemory) Deactivate(id domain.StateID) {
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
}

// IsActive reports whether the state is currently active.
func (m *StateMemory) IsActive(id domain.StateID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.active[id]
	return ok
}

// Active returns a sorted snapshot of the active set.
func (m *StateMemory) Active() []domain.StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.StateID, 0, len(m.active))
	for id := range m.active {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Replace swaps the whole active set, e.g. when restoring a session.
func (m *StateMemory) Replace(ids []domain.StateID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = make(map[domain.StateID]struct{}, len(ids))
	for _, id := range ids {
		m.active[id] = struct{}{}
	}
}

// Reset clears the active set.
func (m *StateMemory) Reset() {
	m.Replace(nil)
}
