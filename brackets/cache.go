package brackets

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Dosada05/bracket-live/models"
	"golang.org/x/sync/singleflight"
)

// Entry is the cached bracket shape of one tournament: the canonical
// skeleton plus an id → position index. The canonical skeleton is never
// handed out directly; merges run over SkeletonCopy.
type Entry struct {
	skeleton []*models.BracketSlot
	index    map[string]int
}

// SkeletonCopy returns a deep copy of the skeleton in round-major,
// sequence-minor order, safe to merge into.
func (e *Entry) SkeletonCopy() []*models.BracketSlot {
	out := make([]*models.BracketSlot, len(e.skeleton))
	for i, s := range e.skeleton {
		out[i] = s.Clone()
	}
	return out
}

// Lookup resolves a match id to its array position.
func (e *Entry) Lookup(matchID string) (int, bool) {
	pos, ok := e.index[matchID]
	return pos, ok
}

// Position is Lookup with the miss turned into ErrUnknownMatchSlot.
func (e *Entry) Position(matchID string) (int, error) {
	pos, ok := e.index[matchID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMatchSlot, matchID)
	}
	return pos, nil
}

// Len returns the number of slots in the skeleton.
func (e *Entry) Len() int {
	return len(e.skeleton)
}

// BuildParams are the two store-derived inputs a skeleton build needs.
type BuildParams struct {
	RoundsTotal int
	PlayerCount int
}

// Cache memoizes bracket skeletons per tournament for the lifetime of the
// process. A tournament's shape is assumed immutable once its bracket exists;
// Evict covers the day that assumption breaks.
//
// Concurrent first requests for the same tournament are collapsed through
// singleflight, so the skeleton is built (and the store queried for its
// parameters) at most once.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]*Entry
	group   singleflight.Group
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int]*Entry)}
}

// GetOrBuild returns the cached entry for the tournament, building it via
// params on first use.
func (c *Cache) GetOrBuild(ctx context.Context, tournamentID int, params func(ctx context.Context) (BuildParams, error)) (*Entry, error) {
	c.mu.RLock()
	entry, ok := c.entries[tournamentID]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	// The flight is shared between callers, so the build must not die with
	// whichever caller happened to start it.
	buildCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(strconv.Itoa(tournamentID), func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have stored it.
		c.mu.RLock()
		entry, ok := c.entries[tournamentID]
		c.mu.RUnlock()
		if ok {
			return entry, nil
		}

		p, err := params(buildCtx)
		if err != nil {
			return nil, err
		}

		skeleton := BuildSkeleton(tournamentID, p.RoundsTotal, p.PlayerCount)
		index := make(map[string]int, len(skeleton))
		for i, slot := range skeleton {
			index[slot.ID] = i
		}
		entry = &Entry{skeleton: skeleton, index: index}

		c.mu.Lock()
		c.entries[tournamentID] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Peek returns the entry without building, for callers that only need an
// already-materialized bracket.
func (c *Cache) Peek(tournamentID int) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[tournamentID]
	return entry, ok
}

// Evict drops the cached shape of one tournament.
func (c *Cache) Evict(tournamentID int) {
	c.mu.Lock()
	delete(c.entries, tournamentID)
	c.mu.Unlock()
}
