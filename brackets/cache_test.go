package brackets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheBuildsOnce(t *testing.T) {
	cache := NewCache()
	var builds int32

	params := func(context.Context) (BuildParams, error) {
		atomic.AddInt32(&builds, 1)
		return BuildParams{RoundsTotal: 3, PlayerCount: 8}, nil
	}

	var wg sync.WaitGroup
	entries := make([]*Entry, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := cache.GetOrBuild(context.Background(), 42, params)
			assert.NoError(t, err)
			entries[i] = entry
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds), "skeleton must be built at most once")
	for _, entry := range entries {
		assert.Same(t, entries[0], entry, "all callers share one entry")
	}
}

func TestCacheBuildErrorNotCached(t *testing.T) {
	cache := NewCache()
	boom := errors.New("store down")

	_, err := cache.GetOrBuild(context.Background(), 1, func(context.Context) (BuildParams, error) {
		return BuildParams{}, boom
	})
	require.ErrorIs(t, err, boom)

	// A later attempt with a healthy store succeeds.
	entry, err := cache.GetOrBuild(context.Background(), 1, func(context.Context) (BuildParams, error) {
		return BuildParams{RoundsTotal: 2, PlayerCount: 4}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Len())
}

func TestCacheBuildSurvivesCallerCancellation(t *testing.T) {
	cache := NewCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entry, err := cache.GetOrBuild(ctx, 7, func(ctx context.Context) (BuildParams, error) {
		// The build context must outlive the caller that triggered it.
		require.NoError(t, ctx.Err())
		return BuildParams{RoundsTotal: 2, PlayerCount: 4}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Len())
}

func TestEntryPosition(t *testing.T) {
	entry := testEntry(t, 42, 2, 4)

	pos, err := entry.Position("42.1.2")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	_, err = entry.Position("42.5.1")
	assert.ErrorIs(t, err, ErrUnknownMatchSlot)
}

func TestCacheEvict(t *testing.T) {
	cache := NewCache()
	var builds int32
	params := func(context.Context) (BuildParams, error) {
		atomic.AddInt32(&builds, 1)
		return BuildParams{RoundsTotal: 2, PlayerCount: 4}, nil
	}

	_, err := cache.GetOrBuild(context.Background(), 9, params)
	require.NoError(t, err)
	_, ok := cache.Peek(9)
	assert.True(t, ok)

	cache.Evict(9)
	_, ok = cache.Peek(9)
	assert.False(t, ok)

	_, err = cache.GetOrBuild(context.Background(), 9, params)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
}
