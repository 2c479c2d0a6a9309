// Package http exposes the engine's introspection surface over HTTP:
// the state graph, active states, path queries and prometheus metrics.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/statewalk/internal/presentation/graph"
	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the interface for the statewalk core this adapter serves.
type Engine interface {
	States() []*domain.State
	Transitions() []*domain.Transition
	ActiveStates() []domain.StateID
	FindPaths(startStates []domain.StateID, target domain.StateID) *domain.Paths
}

// Server routes introspection requests to the engine.
type Server struct {
	engine Engine
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	s := &Server{engine: engine}
	r := chi.NewRouter()
	r.Get("/graph", s.handleGraph)
	r.Get("/active", s.handleActive)
	r.Get("/paths", s.handlePaths)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// handleGraph returns the Mermaid rendering of the state graph with the
// active states highlighted.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	out := graph.GenerateMermaid(
		s.engine.States(),
		s.engine.Transitions(),
		&graph.Overlay{ActiveStates: s.engine.ActiveStates()},
	)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"active": s.engine.ActiveStates()})
}

// handlePaths answers /paths?from=1,2&to=10 with the sorted candidate paths.
// Without "from" the currently active states are the start set.
func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	to, err := strconv.ParseInt(r.URL.Query().Get("to"), 10, 64)
	if err != nil {
		http.Error(w, "missing or invalid 'to' parameter", http.StatusBadRequest)
		return
	}

	var from []domain.StateID
	if raw := r.URL.Query().Get("from"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				http.Error(w, "invalid 'from' parameter", http.StatusBadRequest)
				return
			}
			from = append(from, domain.StateID(id))
		}
	} else {
		from = s.engine.ActiveStates()
	}

	paths := s.engine.FindPaths(from, domain.StateID(to))
	type pathDTO struct {
		States []domain.StateID `json:"states"`
		Score  int              `json:"score"`
	}
	out := make([]pathDTO, 0, paths.Len())
	for _, p := range paths.All() {
		out = append(out, pathDTO{States: p.States, Score: p.Score})
	}
	writeJSON(w, map[string]any{"paths": out})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
