// Package cache holds read-through caches in front of the SQL store: the
// leaderboard snapshot (Redis or in-process) and the quiz catalog.
package cache

import (
	"context"
	"math/rand"
	"time"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// LeaderboardSnapshotSize is how many ranked entries a snapshot holds.
// Smaller limits are served by slicing it.
const LeaderboardSnapshotSize = 100

// LeaderboardCache stores the ranked top of the leaderboard.
type LeaderboardCache interface {
	// Get returns the snapshot and whether one was present.
	Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []models.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// ttlWithJitter spreads expirations by up to 10% of ttl.
func ttlWithJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	jitterMax := int64(ttl) / 10
	return ttl + time.Duration(rand.Int63n(jitterMax+1))
}
