package runtime

import (
	"fmt"
	"sync"

	"github.com/aretw0/statewalk/pkg/domain"
)

// Repository holds all registered states, indexed by id and by name. It is
// the engine's implementation of the state-lookup port.
type Repository struct {
	mu     sync.RWMutex
	byID   map[domain.StateID]*domain.State
	byName map[string]*domain.State
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[domain.StateID]*domain.State),
		byName: make(map[string]*domain.State),
	}
}

// Add registers a state. Duplicate ids or names are configuration mistakes
// and rejected.
func (r *Repository) Add(s *domain.State) error {
	if s == nil {
		return fmt.Errorf("nil state")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; ok {
		return fmt.Errorf("state id %d already registered", s.ID)
	}
	if _, ok := r.byName[s.Name]; ok && s.Name != "" {
		return fmt.Errorf("state name %q already registered", s.Name)
	}
	r.byID[s.ID] = s
	if s.Name != "" {
		r.byName[s.Name] = s
	}
	return nil
}

// StateByID implements ports.StateLocator.
func (r *Repository) StateByID(id domain.StateID) (*domain.State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// StateByName implements ports.StateLocator.
func (r *Repository) StateByName(name string) (*domain.State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Name returns the state's name, or the id rendered as text when unknown.
// Used for log attributes.
func (r *Repository) Name(id domain.StateID) string {
	if s, ok := r.StateByID(id); ok && s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%d", id)
}

// All returns every registered state. Order is unspecified.
func (r *Repository) All() []*domain.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.State, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out
}

// AllObjects returns every object owned by any registered state.
func (r *Repository) AllObjects() []*domain.StateObject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.StateObject
	for _, s := range r.byID {
		out = append(out, s.Objects...)
	}
	return out
}

// Clear drops all states; used on full reconfiguration.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[domain.StateID]*domain.State)
	r.byName = make(map[string]*domain.State)
}
