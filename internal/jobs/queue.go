package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueLeaderboardRefresh never blocks; a full queue returns an error.
	EnqueueLeaderboardRefresh() error
}
