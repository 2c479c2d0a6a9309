package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/statewalk/pkg/domain"
)

// PathFinder computes all simple paths from a set of candidate start states
// to a target state, by expanding the joint table's reverse adjacency
// backward from the target.
//
// The number of simple paths is exponential in dense graphs. The default is
// unbounded, matching the expected graph sizes (hand-built GUI models); a
// depth cap can be set for untrusted or generated graphs.
type PathFinder struct {
	graph    *JointTable
	logger   *slog.Logger
	maxDepth int
}

// PathFinderOption configures a PathFinder.
type PathFinderOption func(*PathFinder)

// WithMaxDepth caps the number of states in any explored path. Zero means
// unbounded.
func WithMaxDepth(depth int) PathFinderOption {
	return func(f *PathFinder) {
		f.maxDepth = depth
	}
}

// WithPathLogger sets the finder's structured logger.
func WithPathLogger(logger *slog.Logger) PathFinderOption {
	return func(f *PathFinder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewPathFinder creates a finder over the given joint table.
func NewPathFinder(graph *JointTable, opts ...PathFinderOption) *PathFinder {
	f := &PathFinder{
		graph:  graph,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindPaths returns every simple path from any of the start states to the
// target, de-duplicated by state sequence and sorted ascending by score
// (ties keep discovery order). An unknown or unreachable target yields an
// empty collection, never an error.
func (f *PathFinder) FindPaths(startStates []domain.StateID, target domain.StateID) *domain.Paths {
	paths := domain.NewPaths()
	if len(startStates) == 0 {
		return paths
	}

	starts := make(map[domain.StateID]struct{}, len(startStates))
	for _, id := range startStates {
		starts[id] = struct{}{}
	}

	// Target already active: a trivial single-state path with score 0.
	if _, ok := starts[target]; ok {
		paths.Add(&domain.Path{States: []domain.StateID{target}})
		return paths
	}

	f.expand([]domain.StateID{target}, starts, paths)
	paths.Sort()

	f.logger.Debug("path search complete",
		"target", target,
		"starts", len(startStates),
		"found", paths.Len(),
	)
	return paths
}

// expand grows a partial path backward. partial[0] is the current frontier,
// partial[len-1] the target. Reaching a start state completes a branch; a
// predecessor already in the partial path is skipped (cycle avoidance), which
// also excludes self-loops.
func (f *PathFinder) expand(partial []domain.StateID, starts map[domain.StateID]struct{}, paths *domain.Paths) {
	if f.maxDepth > 0 && len(partial) >= f.maxDepth {
		return
	}
	frontier := partial[0]
	for _, pred := range f.graph.SourcesOf(frontier) {
		if containsID(partial, pred) {
			continue
		}
		next := make([]domain.StateID, 0, len(partial)+1)
		next = append(next, pred)
		next = append(next, partial...)
		if _, done := starts[pred]; done {
			paths.Add(&domain.Path{States: next, Score: f.scoreOf(next)})
			continue
		}
		f.expand(next, starts, paths)
	}
}

// scoreOf sums the cheapest transition score of every edge in the path.
func (f *PathFinder) scoreOf(states []domain.StateID) int {
	total := 0
	for i := 0; i+1 < len(states); i++ {
		if tr := f.graph.CheapestBetween(states[i], states[i+1]); tr != nil {
			total += tr.Score
		}
	}
	return total
}

func containsID(ids []domain.StateID, id domain.StateID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
