package worker

import (
	"context"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

// RefreshLeaderboardJob recomputes the ranked snapshot and stores it in the cache.
type RefreshLeaderboardJob struct {
	StatsRepo repository.StatsRepository
	Cache     cache.LeaderboardCache
}

func (j *RefreshLeaderboardJob) Name() string { return "refresh_leaderboard" }

func (j *RefreshLeaderboardJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	entries, err := j.StatsRepo.Leaderboard(ctx, cache.LeaderboardSnapshotSize)
	if err != nil {
		return err
	}
	if err := j.Cache.Set(ctx, entries); err != nil {
		return err
	}
	log.Debug("leaderboard snapshot refreshed: %d entries", len(entries))
	return nil
}
