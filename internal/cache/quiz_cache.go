package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// QuizLoader fetches a quiz from the backing store. A nil quiz means not found.
type QuizLoader interface {
	Get(ctx context.Context, id int64) (*models.Quiz, error)
}

// QuizCache caches quizzes with a TTL. Concurrent misses for the same quiz
// share one load.
type QuizCache struct {
	loader QuizLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	cache map[int64]cachedQuiz
}

type cachedQuiz struct {
	quiz      models.Quiz
	expiresAt time.Time
}

func NewQuizCache(loader QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		cache:  make(map[int64]cachedQuiz),
	}
}

func (c *QuizCache) lookup(id int64) (*models.Quiz, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[id]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	q := entry.quiz
	return &q, true
}

func (c *QuizCache) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	if q, ok := c.lookup(id); ok {
		return q, nil
	}

	// The shared load outlives any one caller; each caller still stops
	// waiting when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(strconv.FormatInt(id, 10), func() (interface{}, error) {
		// Another caller may have filled the entry while we waited.
		if q, ok := c.lookup(id); ok {
			return q, nil
		}

		logger.FromContext(loadCtx).WithPrefix("quiz_cache").Debug("quiz cache miss: id=%d", id)
		quiz, err := c.loader.Get(loadCtx, id)
		if err != nil || quiz == nil {
			return quiz, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.cache[id] = cachedQuiz{quiz: *quiz, expiresAt: c.clock().Add(ttlWithJitter(c.ttl))}
			c.mu.Unlock()
		}
		return quiz, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		quiz, _ := res.Val.(*models.Quiz)
		return quiz, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
