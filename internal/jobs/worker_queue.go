package jobs

import (
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool             *worker.Pool
	statsRepo        repository.StatsRepository
	leaderboardCache cache.LeaderboardCache
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, statsRepo repository.StatsRepository, leaderboardCache cache.LeaderboardCache) JobQueue {
	return &WorkerQueue{
		pool:             pool,
		statsRepo:        statsRepo,
		leaderboardCache: leaderboardCache,
	}
}

func (q *WorkerQueue) EnqueueLeaderboardRefresh() error {
	return q.pool.TrySubmit(&worker.RefreshLeaderboardJob{
		StatsRepo: q.statsRepo,
		Cache:     q.leaderboardCache,
	})
}
