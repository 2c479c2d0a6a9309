package runtime

import (
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestStateMemory_ActivateDeactivate(t *testing.T) {
	m := NewStateMemory()
	assert.False(t, m.IsActive(1))

	m.Activate(1)
	assert.True(t, m.IsActive(1))

	// Activating twice is a no-op, not an error.
	m.Activate(1)
	assert.Equal(t, []domain.StateID{1}, m.Active())

	m.Deactivate(1)
	assert.False(t, m.IsActive(1))
	m.Deactivate(1)
	assert.Empty(t, m.Active())
}

func TestStateMemory_ActiveSorted(t *testing.T) {
	m := NewStateMemory()
	m.Activate(9)
	m.Activate(2)
	m.Activate(5)
	assert.Equal(t, []domain.StateID{2, 5, 9}, m.Active())
}

func TestStateMemory_Replace(t *testing.T) {
	m := NewStateMemory()
	m.Activate(1)
	m.Replace([]domain.StateID{7, 3})

	assert.False(t, m.IsActive(1))
	assert.Equal(t, []domain.StateID{3, 7}, m.Active())

	m.Reset()
	assert.Empty(t, m.Active())
}
