package ports

import (
	"context"
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunActiveStateStoreContract exercises the behavior every ActiveStateStore
// implementation must share. Adapter tests call it against their backend.
func RunActiveStateStoreContract(t *testing.T, store ActiveStateStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadUnknownSession", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		active := []domain.StateID{3, 1, 7}
		require.NoError(t, store.Save(ctx, "contract-s1", active))

		got, err := store.Load(ctx, "contract-s1")
		require.NoError(t, err)
		assert.ElementsMatch(t, active, got)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-s2", []domain.StateID{1}))
		require.NoError(t, store.Save(ctx, "contract-s2", []domain.StateID{2, 4}))

		got, err := store.Load(ctx, "contract-s2")
		require.NoError(t, err)
		assert.ElementsMatch(t, []domain.StateID{2, 4}, got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-s3", []domain.StateID{9}))
		require.NoError(t, store.Clear(ctx, "contract-s3"))

		_, err := store.Load(ctx, "contract-s3")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("ClearUnknownIsNoop", func(t *testing.T) {
		assert.NoError(t, store.Clear(ctx, "contract-never-saved"))
	})
}
