package services

import (
	"context"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = cache.LeaderboardSnapshotSize
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetUserAggregate(ctx context.Context, userID int64) (*models.AggregateStats, error)
	GetTopicBreakdown(ctx context.Context, userID int64) ([]models.TopicStat, error)
	GetPerformanceStats(ctx context.Context, userID int64) (*models.PerformanceStats, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	ListPerformances(ctx context.Context, userID int64) ([]models.PerformanceWithQuiz, error)
}

type statsService struct {
	statsRepo        repository.StatsRepository
	performanceRepo  repository.PerformanceRepository
	leaderboardCache cache.LeaderboardCache
}

// NewStatsService creates a new StatsService
func NewStatsService(
	statsRepo repository.StatsRepository,
	performanceRepo repository.PerformanceRepository,
	leaderboardCache cache.LeaderboardCache,
) StatsService {
	return &statsService{
		statsRepo:        statsRepo,
		performanceRepo:  performanceRepo,
		leaderboardCache: leaderboardCache,
	}
}

func (s *statsService) GetUserAggregate(ctx context.Context, userID int64) (*models.AggregateStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_service")
	log.Debug("getting aggregate: user_id=%d", userID)

	stats, err := s.statsRepo.Aggregate(ctx, userID)
	if err != nil {
		log.Error("failed to get aggregate: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		stats = &models.AggregateStats{}
	}
	return stats, nil
}

func (s *statsService) GetTopicBreakdown(ctx context.Context, userID int64) ([]models.TopicStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_service")
	log.Debug("getting topic breakdown: user_id=%d", userID)

	topics, err := s.statsRepo.TopicBreakdown(ctx, userID)
	if err != nil {
		log.Error("failed to get topic breakdown: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if topics == nil {
		topics = []models.TopicStat{}
	}
	return topics, nil
}

func (s *statsService) GetPerformanceStats(ctx context.Context, userID int64) (*models.PerformanceStats, error) {
	overall, err := s.GetUserAggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	byTopic, err := s.GetTopicBreakdown(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.PerformanceStats{Overall: *overall, ByTopic: byTopic}, nil
}

// GetLeaderboard serves the top limit users. The cached snapshot always holds
// the top MaxLeaderboardLimit entries, so any limit is a prefix of it.
func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_service")
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	log.Debug("getting leaderboard: limit=%d", limit)

	entries, ok, err := s.leaderboardCache.Get(ctx)
	if err != nil {
		log.Warn("leaderboard cache read failed, falling back to database: %v", err)
	}
	if !ok || err != nil {
		entries, err = s.statsRepo.Leaderboard(ctx, MaxLeaderboardLimit)
		if err != nil {
			log.Error("failed to get leaderboard: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if err := s.leaderboardCache.Set(ctx, entries); err != nil {
			log.Warn("failed to store leaderboard snapshot: %v", err)
		}
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, nil
}

func (s *statsService) ListPerformances(ctx context.Context, userID int64) ([]models.PerformanceWithQuiz, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_service")
	log.Debug("listing performances: user_id=%d", userID)

	records, err := s.performanceRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list performances: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if records == nil {
		records = []models.PerformanceWithQuiz{}
	}
	return records, nil
}
