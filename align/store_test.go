package align

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	table := BuildWeightTable([]rune("ACGT"), 2, DefaultScoring())

	ok, err := store.Contains(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Load(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, 2, table))

	loaded, ok, err := store.Load(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, table, loaded)
}

func TestMemoryStore_SnapshotsOnSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	table := BuildWeightTable([]rune("AC"), 1, DefaultScoring())
	require.NoError(t, store.Save(ctx, 1, table))

	// mutate both the saved original and a loaded copy
	table.Set("A", "G", 9)
	loaded, _, err := store.Load(ctx, 1)
	require.NoError(t, err)
	loaded.Set("C", "G", 9)

	again, _, err := store.Load(ctx, 1)
	require.NoError(t, err)
	_, ok := again.Lookup("A", "G")
	assert.False(t, ok)
	_, ok = again.Lookup("C", "G")
	assert.False(t, ok)
}

func TestMemoryStore_SharedByEngines(t *testing.T) {
	// GIVEN one store backing an engine per goroutine
	ctx := context.Background()
	store := NewMemoryStore()
	pairs := [][2]string{{"ACGT", "ACGA"}, {"0110100110010", "0110110110010"}, {"AAAA", "AAAA"}}

	var wg sync.WaitGroup
	errs := make(chan error, 8*len(pairs))
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := NewEngine(store)
			if err != nil {
				errs <- err
				return
			}
			for _, p := range pairs {
				if _, err := e.Align(ctx, p[0], p[1]); err != nil {
					errs <- err
				}
			}
			errs <- e.Flush(ctx)
		}()
	}
	wg.Wait()
	close(errs)

	// THEN every run succeeds and both block lengths are stored
	for err := range errs {
		require.NoError(t, err)
	}
	for _, l := range []int{1, 2} {
		ok, err := store.Contains(ctx, l)
		require.NoError(t, err)
		assert.True(t, ok, "block length %d", l)
	}
}
