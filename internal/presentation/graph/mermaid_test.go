package graph

import (
	"strings"
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	states := []*domain.State{
		{ID: 1, Name: "login"},
		{ID: 2, Name: "home page"},
		{ID: 3, Name: "settings"},
	}
	transitions := []*domain.Transition{
		{From: 1, Activate: []domain.StateID{2}, Score: 3, RequireArrival: true},
		{From: 2, Activate: []domain.StateID{3, 1}, Exit: []domain.StateID{2}},
	}

	out := GenerateMermaid(states, transitions, nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `login["login"]`)
	assert.Contains(t, out, `home_page["home page"]`, "spaces are sanitized in node ids")
	assert.Contains(t, out, `login -- "3 ✓" --> home_page`, "verified edges carry a check mark")
	// A hyper-edge draws one arrow per activated state.
	assert.Contains(t, out, `home_page -- "0" --> settings`)
	assert.Contains(t, out, `home_page -- "0" --> login`)
	assert.Contains(t, out, "home_page -. exit .-> home_page")
	assert.NotContains(t, out, "classDef active")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	states := []*domain.State{{ID: 1, Name: "login"}}

	out := GenerateMermaid(states, nil, &Overlay{ActiveStates: []domain.StateID{1}})

	assert.Contains(t, out, "classDef active")
	assert.Contains(t, out, "class login active;")
}

func TestGenerateMermaid_UnknownStateLabel(t *testing.T) {
	transitions := []*domain.Transition{
		{From: 7, Activate: []domain.StateID{8}},
	}

	out := GenerateMermaid(nil, transitions, nil)
	assert.Contains(t, out, `state_7 -- "0" --> state_8`)
}
