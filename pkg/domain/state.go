package domain

// StateID identifies a state. IDs are assigned at configuration load and are
// stable for the lifetime of the graph.
type StateID int64

// State represents one discrete screen of the automated application.
// Identity (ID, Name) is immutable after construction; the Hidden list is
// runtime bookkeeping maintained by the transition executor.
type State struct {
	ID   StateID
	Name string

	// Objects are the UI elements owned by this state.
	Objects []*StateObject

	// CanHide lists states this state covers when it appears (e.g. a modal
	// dialog over the page behind it). Covered states become reachable again
	// through the joint table's hidden index.
	CanHide []StateID

	// Hidden holds the states currently covered by this state. Managed by the
	// executor; reset when the state exits.
	Hidden []StateID
}

// AddHidden records a state as covered by this one.
func (s *State) AddHidden(id StateID) {
	s.Hidden = append(s.Hidden, id)
}

// ResetHidden clears the covered-state bookkeeping.
func (s *State) ResetHidden() {
	s.Hidden = nil
}

// Object returns the owned object with the given name, or nil.
func (s *State) Object(name string) *StateObject {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}
