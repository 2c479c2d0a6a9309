package runtime

import (
	"sort"
	"sync"

	"github.com/aretw0/statewalk/pkg/domain"
)

// JointTable is the indexed view of the state graph: for every state, the
// states with a transition leading to it (reverse adjacency), the states it
// can reach, and its outgoing transitions. A transition activating several
// states (hyper-edge) produces one reverse entry per activated state.
//
// A separate hidden index tracks dynamic edges to states currently covered by
// an active state, so paths can route back to them. The hidden index changes
// during execution; the static indexes only change on rebuild.
type JointTable struct {
	mu          sync.RWMutex
	incoming    map[domain.StateID]map[domain.StateID]struct{}
	outgoing    map[domain.StateID]map[domain.StateID]struct{}
	hidden      map[domain.StateID]map[domain.StateID]struct{}
	transitions map[domain.StateID][]*domain.Transition
}

// NewJointTable creates an empty joint table.
func NewJointTable() *JointTable {
	t := &JointTable{}
	t.reset()
	return t
}

func (t *JointTable) reset() {
	t.incoming = make(map[domain.StateID]map[domain.StateID]struct{})
	t.outgoing = make(map[domain.StateID]map[domain.StateID]struct{})
	t.hidden = make(map[domain.StateID]map[domain.StateID]struct{})
	t.transitions = make(map[domain.StateID][]*domain.Transition)
}

// Clear drops every index; used when the graph is rebuilt wholesale.
func (t *JointTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

// RecordTransition adds the edges implied by the transition's activation set:
// one (source -> target) pair per activated state, in both directions of the
// index, and stores the transition under its source state.
func (t *JointTable) RecordTransition(source domain.StateID, tr *domain.Transition) {
	if tr == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transitions[source] = append(t.transitions[source], tr)
	for _, target := range tr.Activate {
		addEdge(t.incoming, target, source)
		addEdge(t.outgoing, source, target)
	}
}

// SourcesOf returns every state with at least one transition leading to the
// target, merging the static reverse index with the hidden index. The result
// is sorted ascending so traversal order is deterministic; it is empty (never
// nil) for unknown states.
func (t *JointTable) SourcesOf(target domain.StateID) []domain.StateID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	set := make(map[domain.StateID]struct{})
	for id := range t.incoming[target] {
		set[id] = struct{}{}
	}
	for id := range t.hidden[target] {
		set[id] = struct{}{}
	}
	return sortedIDs(set)
}

// TargetsOf returns every state directly reachable from the given state,
// sorted ascending.
func (t *JointTable) TargetsOf(source domain.StateID) []domain.StateID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sortedIDs(t.outgoing[source])
}

// TransitionsOf returns the outgoing transitions of a state. Empty for
// states with no outgoing edges, never an error.
func (t *JointTable) TransitionsOf(source domain.StateID) []*domain.Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*domain.Transition(nil), t.transitions[source]...)
}

// TransitionsBetween returns the transitions of `from` that activate `to`.
func (t *JointTable) TransitionsBetween(from, to domain.StateID) []*domain.Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*domain.Transition
	for _, tr := range t.transitions[from] {
		if tr.ActivatesTarget(to) {
			out = append(out, tr)
		}
	}
	return out
}

// CheapestBetween returns the lowest-score transition of `from` activating
// `to`, or nil when no such transition exists. Ties keep registration order.
func (t *JointTable) CheapestBetween(from, to domain.StateID) *domain.Transition {
	var best *domain.Transition
	for _, tr := range t.TransitionsBetween(from, to) {
		if best == nil || tr.Score < best.Score {
			best = tr
		}
	}
	return best
}

// AddHidden records dynamic edges from the covering state to each state it
// currently hides, making the hidden states reachable again.
func (t *JointTable) AddHidden(covering *domain.State) {
	if covering == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range covering.Hidden {
		addEdge(t.hidden, h, covering.ID)
	}
}

// RemoveHidden drops the dynamic edges created for the exiting state's hidden
// states.
func (t *JointTable) RemoveHidden(exiting *domain.State) {
	if exiting == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range exiting.Hidden {
		if set, ok := t.hidden[h]; ok {
			delete(set, exiting.ID)
		}
	}
}

func addEdge(index map[domain.StateID]map[domain.StateID]struct{}, key, value domain.StateID) {
	set, ok := index[key]
	if !ok {
		set = make(map[domain.StateID]struct{})
		index[key] = set
	}
	set[value] = struct{}{}
}

func sortedIDs(set map[domain.StateID]struct{}) []domain.StateID {
	out := make([]domain.StateID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
