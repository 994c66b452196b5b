package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// MemoryLeaderboard is the single-process LeaderboardCache used when no
// Redis address is configured.
type MemoryLeaderboard struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.RWMutex
	entries   []models.LeaderboardEntry
	expiresAt time.Time
}

func NewMemoryLeaderboard(ttl time.Duration) *MemoryLeaderboard {
	return &MemoryLeaderboard{ttl: ttl, clock: time.Now}
}

func (c *MemoryLeaderboard) Get(_ context.Context) ([]models.LeaderboardEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entries == nil || !c.expiresAt.After(c.clock()) {
		return nil, false, nil
	}
	out := make([]models.LeaderboardEntry, len(c.entries))
	copy(out, c.entries)
	return out, true, nil
}

func (c *MemoryLeaderboard) Set(_ context.Context, entries []models.LeaderboardEntry) error {
	snapshot := make([]models.LeaderboardEntry, len(entries))
	copy(snapshot, entries)

	c.mu.Lock()
	c.entries = snapshot
	c.expiresAt = c.clock().Add(ttlWithJitter(c.ttl))
	c.mu.Unlock()
	return nil
}

func (c *MemoryLeaderboard) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
	return nil
}
