// Package region implements the declarative cross-state search-region
// dependency system: a registry of "object B's search region derives from
// object A's last match" relationships, and the resolver that recomputes B's
// region whenever A is found.
package region

import (
	"sync"

	"github.com/aretw0/statewalk/pkg/domain"
)

// DependentObject pairs a dependent UI element with the dependency descriptor
// it was registered under. Multiple registrations of the same pair are legal
// and preserved; each one represents a distinct consumer.
type DependentObject struct {
	Object *domain.StateObject
	Config *domain.SearchRegionOnObject
}

type dependencyKey struct {
	state  string
	object string
}

// DependencyRegistry is a concurrent index from (anchor state name, anchor
// object name) to the dependents that declared a region dependency on that
// anchor. Registration is best-effort: nil or incomplete input is ignored
// silently, never an error. Safe for concurrent Register and DependentsOf
// without caller-side locking.
type DependencyRegistry struct {
	mu   sync.RWMutex
	deps map[dependencyKey][]DependentObject
}

// NewDependencyRegistry creates an empty registry.
func NewDependencyRegistry() *DependencyRegistry {
	return &DependencyRegistry{deps: make(map[dependencyKey][]DependentObject)}
}

// Register inserts a dependent keyed by the config's anchor. A nil object or
// config, or an anchor with a missing state or object name, registers
// nothing. Anchor components are never coerced to wildcards.
func (r *DependencyRegistry) Register(obj *domain.StateObject, cfg *domain.SearchRegionOnObject) {
	if obj == nil || cfg == nil {
		return
	}
	if cfg.TargetStateName == "" || cfg.TargetObjectName == "" {
		return
	}
	key := dependencyKey{state: cfg.TargetStateName, object: cfg.TargetObjectName}
	r.mu.Lock()
	r.deps[key] = append(r.deps[key], DependentObject{Object: obj, Config: cfg})
	r.mu.Unlock()
}

// DependentsOf returns the dependents registered for the anchor. Unknown or
// empty keys yield an empty slice, never nil and never an error. The slice
// is a copy; callers may not see later registrations through it.
func (r *DependencyRegistry) DependentsOf(stateName, objectName string) []DependentObject {
	if stateName == "" || objectName == "" {
		return []DependentObject{}
	}
	key := dependencyKey{state: stateName, object: objectName}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DependentObject, len(r.deps[key]))
	copy(out, r.deps[key])
	return out
}

// Size returns the total number of registrations, counting duplicates.
func (r *DependencyRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, list := range r.deps {
		n += len(list)
	}
	return n
}

// Clear removes all entries.
func (r *DependencyRegistry) Clear() {
	r.mu.Lock()
	r.deps = make(map[dependencyKey][]DependentObject)
	r.mu.Unlock()
}
