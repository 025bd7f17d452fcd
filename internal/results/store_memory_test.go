package results

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *InMemoryStore {
	t.Helper()
	ctx := context.Background()
	store := NewInMemoryStore()

	fixtures := []Result{
		{Service: "PAN Verification", Category: "employment", Status: StatusSuccess},
		{Service: "GSTIN Verification", Category: "gstin", Status: StatusSuccess},
		{Service: "Vehicle RC Verification", Category: "vehicle", Status: StatusFailed},
		{Service: "Credit Score", Category: "financial", Status: StatusFailed},
	}
	for _, r := range fixtures {
		_, err := store.Append(ctx, r)
		require.NoError(t, err)
	}
	return store
}

func TestAppendAssignsUniqueIDsAndTimestamps(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		r, err := store.Append(ctx, Result{Service: "PAN Verification", Category: "employment", Status: StatusSuccess})
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "duplicate ID %d", r.ID)
		assert.False(t, r.Timestamp.IsZero())
		seen[r.ID] = true
	}
}

func TestQueryFilters(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	t.Run("empty filter returns everything in insertion order", func(t *testing.T) {
		all, err := store.Query(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "PAN Verification", all[0].Service)
	})

	t.Run("all sentinel equals no filter", func(t *testing.T) {
		filtered, err := store.Query(ctx, Filter{Category: FilterAll, Status: FilterAll})
		require.NoError(t, err)
		unfiltered, err := store.Query(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, unfiltered, filtered)
	})

	t.Run("status filter", func(t *testing.T) {
		failed, err := store.Query(ctx, Filter{Status: string(StatusFailed)})
		require.NoError(t, err)
		require.Len(t, failed, 2)
		for _, r := range failed {
			assert.Equal(t, StatusFailed, r.Status)
		}
	})

	t.Run("search is case-insensitive over service and category", func(t *testing.T) {
		byService, err := store.Query(ctx, Filter{Search: "gstin"})
		require.NoError(t, err)
		require.Len(t, byService, 1)
		assert.Equal(t, "GSTIN Verification", byService[0].Service)

		byCategory, err := store.Query(ctx, Filter{Search: "FINANCIAL"})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
	})

	t.Run("filters combine", func(t *testing.T) {
		out, err := store.Query(ctx, Filter{Search: "verification", Status: string(StatusSuccess)})
		require.NoError(t, err)
		require.Len(t, out, 2)
	})

	t.Run("applying a filter twice changes nothing", func(t *testing.T) {
		f := Filter{Status: string(StatusFailed)}
		once, err := store.Query(ctx, f)
		require.NoError(t, err)
		for _, r := range once {
			assert.True(t, f.Matches(r))
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	all, err := store.List(ctx)
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, []int64{all[0].ID, all[2].ID, 999})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, all[1].ID, remaining[0].ID)
	assert.Equal(t, all[3].ID, remaining[1].ID)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	require.NoError(t, store.Clear(ctx))
	remaining, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
