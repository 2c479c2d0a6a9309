package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_Accessors(t *testing.T) {
	p := &Path{States: []StateID{1, 5, 10}, Score: 3}

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, StateID(1), p.Start())
	assert.Equal(t, StateID(10), p.Target())
	assert.True(t, p.Contains(5))
	assert.False(t, p.Contains(7))
	assert.Equal(t, "1>5>10", p.Key())
	assert.Equal(t, "1>5>10 (score 3)", p.String())

	empty := &Path{}
	assert.Equal(t, StateID(0), empty.Start())
	assert.Equal(t, StateID(0), empty.Target())
}

func TestPaths_DeduplicatesAndSorts(t *testing.T) {
	ps := NewPaths()
	ps.Add(&Path{States: []StateID{1, 10}, Score: 5})
	ps.Add(&Path{States: []StateID{1, 2, 10}, Score: 2})
	ps.Add(&Path{States: []StateID{1, 10}, Score: 5}) // duplicate sequence
	ps.Add(nil)

	assert.Equal(t, 2, ps.Len())

	ps.Sort()
	assert.Equal(t, []StateID{1, 2, 10}, ps.Best().States)
	assert.Equal(t, []StateID{1, 10}, ps.At(1).States)
}

func TestPaths_StableSortKeepsDiscoveryOrder(t *testing.T) {
	ps := NewPaths()
	ps.Add(&Path{States: []StateID{1, 2, 10}, Score: 4})
	ps.Add(&Path{States: []StateID{1, 3, 10}, Score: 4})
	ps.Sort()

	assert.Equal(t, []StateID{1, 2, 10}, ps.At(0).States)
	assert.Equal(t, []StateID{1, 3, 10}, ps.At(1).States)
}

func TestPaths_Empty(t *testing.T) {
	ps := NewPaths()
	assert.True(t, ps.IsEmpty())
	assert.Nil(t, ps.Best())
}
