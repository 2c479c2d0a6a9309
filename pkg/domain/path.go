package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Path is an acyclic sequence of state ids from a start state to a target
// state, with the accumulated score of the transitions traversed.
type Path struct {
	States []StateID
	Score  int
}

// Contains reports whether the state id already appears in the path.
func (p *Path) Contains(id StateID) bool {
	for _, s := range p.States {
		if s == id {
			return true
		}
	}
	return false
}

// Len returns the number of states in the path.
func (p *Path) Len() int { return len(p.States) }

// Target returns the final state of the path, or 0 for an empty path.
func (p *Path) Target() StateID {
	if len(p.States) == 0 {
		return 0
	}
	return p.States[len(p.States)-1]
}

// Start returns the first state of the path, or 0 for an empty path.
func (p *Path) Start() StateID {
	if len(p.States) == 0 {
		return 0
	}
	return p.States[0]
}

// Key returns a canonical identity for the state sequence, used to
// de-duplicate paths that were discovered through different expansions.
func (p *Path) Key() string {
	parts := make([]string, len(p.States))
	for i, s := range p.States {
		parts[i] = strconv.FormatInt(int64(s), 10)
	}
	return strings.Join(parts, ">")
}

func (p *Path) String() string {
	return p.Key() + " (score " + strconv.Itoa(p.Score) + ")"
}

// Paths is a collection of candidate paths to the same target. Adding keeps
// discovery order; Sort orders ascending by score, preserving discovery order
// among equal scores.
type Paths struct {
	list []*Path
	seen map[string]struct{}
}

// NewPaths returns an empty collection.
func NewPaths() *Paths {
	return &Paths{seen: make(map[string]struct{})}
}

// Add appends a path unless an identical state sequence is already present.
func (ps *Paths) Add(p *Path) {
	if p == nil {
		return
	}
	key := p.Key()
	if _, dup := ps.seen[key]; dup {
		return
	}
	ps.seen[key] = struct{}{}
	ps.list = append(ps.list, p)
}

// Sort orders the collection ascending by score. The sort is stable so ties
// keep discovery order.
func (ps *Paths) Sort() {
	sort.SliceStable(ps.list, func(i, j int) bool {
		return ps.list[i].Score < ps.list[j].Score
	})
}

// Best returns the lowest-score path, or nil when empty. Call Sort first if
// paths were added out of order.
func (ps *Paths) Best() *Path {
	if len(ps.list) == 0 {
		return nil
	}
	return ps.list[0]
}

// Len returns the number of paths.
func (ps *Paths) Len() int { return len(ps.list) }

// IsEmpty reports whether no path was found.
func (ps *Paths) IsEmpty() bool { return len(ps.list) == 0 }

// At returns the i-th path in current order.
func (ps *Paths) At(i int) *Path { return ps.list[i] }

// All returns the underlying slice in current order. Callers must not modify
// the returned paths.
func (ps *Paths) All() []*Path { return ps.list }
