// Package graph renders the state graph for human inspection.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/statewalk/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	ActiveStates []domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from the states
// and transitions. Transition arrows carry the edge score; exit edges are
// drawn dashed; hyper-edges produce one arrow per activated state. Active
// states from the overlay are highlighted.
func GenerateMermaid(states []*domain.State, transitions []*domain.Transition, overlay *Overlay) string {
	names := make(map[domain.StateID]string, len(states))
	for _, s := range states {
		names[s.ID] = s.Name
	}
	label := func(id domain.StateID) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return fmt.Sprintf("state_%d", id)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range states {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(label(s.ID)), label(s.ID)))
	}

	for _, t := range transitions {
		from := sanitizeMermaidID(label(t.From))
		arrow := fmt.Sprintf("-- \"%d\" -->", t.Score)
		if t.RequireArrival {
			arrow = fmt.Sprintf("-- \"%d ✓\" -->", t.Score)
		}
		for _, target := range t.Activate {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, sanitizeMermaidID(label(target))))
		}
		for _, target := range t.Exit {
			sb.WriteString(fmt.Sprintf("    %s -. exit .-> %s\n", from, sanitizeMermaidID(label(target))))
		}
	}

	if overlay != nil && len(overlay.ActiveStates) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range overlay.ActiveStates {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", sanitizeMermaidID(label(id))))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
