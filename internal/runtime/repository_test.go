package runtime

import (
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_AddAndLookup(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Add(&domain.State{ID: 1, Name: "login"}))
	require.NoError(t, repo.Add(&domain.State{ID: 2, Name: "home"}))

	byID, ok := repo.StateByID(1)
	require.True(t, ok)
	assert.Equal(t, "login", byID.Name)

	byName, ok := repo.StateByName("home")
	require.True(t, ok)
	assert.Equal(t, domain.StateID(2), byName.ID)

	_, ok = repo.StateByID(99)
	assert.False(t, ok)
}

func TestRepository_RejectsDuplicates(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Add(&domain.State{ID: 1, Name: "login"}))

	assert.Error(t, repo.Add(&domain.State{ID: 1, Name: "other"}))
	assert.Error(t, repo.Add(&domain.State{ID: 2, Name: "login"}))
	assert.Error(t, repo.Add(nil))
}

func TestRepository_Name(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Add(&domain.State{ID: 1, Name: "login"}))

	assert.Equal(t, "login", repo.Name(1))
	assert.Equal(t, "42", repo.Name(42))
}

func TestRepository_AllObjects(t *testing.T) {
	repo := NewRepository()
	require.NoError(t, repo.Add(&domain.State{ID: 1, Name: "login", Objects: []*domain.StateObject{
		{Name: "user", OwnerState: "login"},
		{Name: "pass", OwnerState: "login"},
	}}))
	require.NoError(t, repo.Add(&domain.State{ID: 2, Name: "home", Objects: []*domain.StateObject{
		{Name: "logo", OwnerState: "home"},
	}}))

	assert.Len(t, repo.AllObjects(), 3)
	assert.Len(t, repo.All(), 2)
}
