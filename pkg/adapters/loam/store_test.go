package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/animator/internal/testutils"
	adapter "github.com/aretw0/animator/pkg/adapters/loam"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *adapter.Store {
	t.Helper()
	_, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	return adapter.New(loam.NewTypedRepository[adapter.OverrideDocument](repo))
}

func TestLoamStore_Contract(t *testing.T) {
	ports.RunOverrideStoreContract(t, newStore(t))
}

func TestLoamStore_NodeNamesWithSeparators(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "menu", "items/item.1", map[string]any{"merge": true}))
	require.NoError(t, store.Save(ctx, "menu", "items_item_1", map[string]any{"combine": true}))

	loaded, err := store.Load(ctx, "menu")
	require.NoError(t, err)
	// Both names map to the same document id; the last save wins.
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "items_item_1")
}
