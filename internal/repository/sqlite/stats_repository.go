package sqlite

import (
	"context"
	"database/sql"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// Aggregate scans the user's ledger. A user without attempts gets zeros.
func (r *statsRepository) Aggregate(ctx context.Context, userID int64) (*models.AggregateStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("aggregating performance: user_id=%d", userID)

	var s models.AggregateStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(score), 0),
    COALESCE(AVG(score), 0),
    COALESCE(SUM(correct_answers), 0),
    COALESCE(SUM(total_questions), 0)
FROM performances
WHERE user_id = ?
`, userID).Scan(&s.TotalQuizzes, &s.TotalScore, &s.AverageScore, &s.TotalCorrectAnswers, &s.TotalQuestions)
	if err != nil {
		log.Error("failed to aggregate performance: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) TopicBreakdown(ctx context.Context, userID int64) ([]models.TopicStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing topic breakdown: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT q.topic, COUNT(*), AVG(p.score)
FROM performances p
JOIN quizzes q ON q.id = p.quiz_id
WHERE p.user_id = ?
GROUP BY q.topic
ORDER BY q.topic ASC
`, userID)
	if err != nil {
		log.Error("failed to compute topic breakdown: %v", err)
		return nil, err
	}
	defer rows.Close()

	stats := []models.TopicStat{}
	for rows.Next() {
		var s models.TopicStat
		if err := rows.Scan(&s.Topic, &s.Count, &s.AverageScore); err != nil {
			log.Error("failed to scan topic stat: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Leaderboard ranks users by total score; ties go to the older account.
func (r *statsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading leaderboard: limit=%d", limit)

	query, args, err := sqlBuilder.
		Select(userColumns...).
		From("users").
		OrderBy("total_score DESC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:     len(entries) + 1,
			UserID:   u.ID,
			Username: u.Username,
			Profile:  u.Profile,
			Stats:    u.Stats,
		})
	}
	return entries, rows.Err()
}
