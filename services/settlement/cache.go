package settlement

import (
	"sync"
	"time"

	"betTracker/models"
)

// GameCache holds final-game snapshots for a bounded lifetime so repeated
// passes within the TTL window do not refetch unchanged rows. It is injected
// into the coordinator rather than held as package state.
type GameCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]gameCacheEntry
}

type gameCacheEntry struct {
	game     models.Game
	storedAt time.Time
}

func NewGameCache(ttl time.Duration) *GameCache {
	return &GameCache{
		ttl:     ttl,
		entries: make(map[string]gameCacheEntry),
	}
}

// Get returns a cached final game, treating expired entries as misses.
func (c *GameCache) Get(gameID string) (models.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[gameID]
	if !found || time.Since(entry.storedAt) > c.ttl {
		return models.Game{}, false
	}
	return entry.game, true
}

// Put stores a batch of fetched games. Final scores never change, so entries
// are only evicted by TTL, not invalidated.
func (c *GameCache) Put(games map[string]models.Game) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, game := range games {
		c.entries[id] = gameCacheEntry{game: game, storedAt: now}
	}

	// Drop expired entries while we hold the lock; keeps the map bounded.
	for id, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, id)
		}
	}
}
