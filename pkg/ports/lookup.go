package ports

import "github.com/aretw0/statewalk/pkg/domain"

// StateLocator resolves states by name or id. The region resolver uses it to
// locate an anchor object when the anchor is not present in the current
// match set.
type StateLocator interface {
	StateByName(name string) (*domain.State, bool)
	StateByID(id domain.StateID) (*domain.State, bool)
}
