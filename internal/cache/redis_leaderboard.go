package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

const leaderboardKey = "leaderboard:top"

// RedisLeaderboard keeps the snapshot as one JSON value with a TTL, so every
// API replica serves the same ordering.
type RedisLeaderboard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLeaderboard(client *redis.Client, ttl time.Duration) *RedisLeaderboard {
	return &RedisLeaderboard{client: client, ttl: ttl}
}

func (c *RedisLeaderboard) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_cache")

	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("leaderboard cache miss")
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to read leaderboard cache: %v", err)
		return nil, false, err
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn("discarding unreadable leaderboard snapshot: %v", err)
		return nil, false, nil
	}
	log.Debug("leaderboard cache hit: %d entries", len(entries))
	return entries, true, nil
}

func (c *RedisLeaderboard) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, raw, ttlWithJitter(c.ttl)).Err()
}

func (c *RedisLeaderboard) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}
