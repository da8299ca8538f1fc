package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/animator/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunOverrideStoreContract runs a suite of tests to verify that an
// OverrideStore implementation behaves as the servers expect.
func RunOverrideStoreContract(t *testing.T, store OverrideStore) {
	ctx := context.Background()
	systemID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, systemID, "title", map[string]any{
			"merge":    true,
			"duration": map[string]any{"enter": 0.5},
		})
		require.NoError(t, err)

		loaded, err := store.Load(ctx, systemID)
		require.NoError(t, err)
		require.Contains(t, loaded, "title")

		// Backends may change numeric types; compare what the settings decoder sees.
		p, err := settings.Decode(loaded["title"])
		require.NoError(t, err)
		require.NotNil(t, p.Merge)
		assert.True(t, *p.Merge)
		require.NotNil(t, p.Duration)
		require.NotNil(t, p.Duration.Enter)
		assert.InDelta(t, 0.5, *p.Duration.Enter, 1e-9)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, systemID, "title", map[string]any{"active": false}))

		loaded, err := store.Load(ctx, systemID)
		require.NoError(t, err)
		assert.NotContains(t, loaded["title"], "merge")
		assert.Contains(t, loaded["title"], "active")
	})

	t.Run("Load Empty System", func(t *testing.T) {
		loaded, err := store.Load(ctx, "empty-"+systemID)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Systems Are Isolated", func(t *testing.T) {
		other := "other-" + systemID
		require.NoError(t, store.Save(ctx, other, "footer", map[string]any{"condition": false}))
		defer func() { _ = store.Delete(ctx, other, "footer") }()

		loaded, err := store.Load(ctx, systemID)
		require.NoError(t, err)
		assert.NotContains(t, loaded, "footer")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, systemID, "title"))

		loaded, err := store.Load(ctx, systemID)
		require.NoError(t, err)
		assert.NotContains(t, loaded, "title")

		assert.NoError(t, store.Delete(ctx, systemID, "missing"), "deleting a missing entry")
	})
}
