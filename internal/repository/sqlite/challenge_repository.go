package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

var challengeColumns = []string{
	"id", "challenger_id", "opponent_id", "quiz_id", "message", "status",
	"challenger_performance_id", "opponent_performance_id", "winner_id", "created_at", "updated_at",
}

type challengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new ChallengeRepository implementation
func NewChallengeRepository(db *sql.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func scanChallenge(row rowScanner) (*models.Challenge, error) {
	var (
		c                       models.Challenge
		challengerPerf, oppPerf sql.NullInt64
		winner                  sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.ChallengerID, &c.OpponentID, &c.QuizID, &c.Message, &c.Status,
		&challengerPerf, &oppPerf, &winner, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ChallengerPerformanceID = int64Ptr(challengerPerf)
	c.OpponentPerformanceID = int64Ptr(oppPerf)
	c.WinnerID = int64Ptr(winner)
	return &c, nil
}

func (r *challengeRepository) Create(ctx context.Context, challenge models.Challenge) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("creating challenge: challenger=%d opponent=%d quiz=%d", challenge.ChallengerID, challenge.OpponentID, challenge.QuizID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO challenges (challenger_id, opponent_id, quiz_id, message, status)
VALUES (?, ?, ?, ?, ?)
`, challenge.ChallengerID, challenge.OpponentID, challenge.QuizID, challenge.Message, models.ChallengePending)
	if err != nil {
		log.Error("failed to create challenge: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("challenge created: id=%d", id)
	return id, nil
}

func (r *challengeRepository) Get(ctx context.Context, id int64) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("getting challenge: id=%d", id)

	query, args, err := sqlBuilder.Select(challengeColumns...).From("challenges").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanChallenge(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("challenge not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get challenge: %v", err)
		return nil, err
	}
	return c, nil
}

func (r *challengeRepository) Transition(ctx context.Context, id int64, from, to models.ChallengeStatus) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("transitioning challenge %d: %s -> %s", id, from, to)

	res, err := r.db.ExecContext(ctx, `
UPDATE challenges SET status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = ?
`, to, id, from)
	if err != nil {
		log.Error("failed to transition challenge: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// claimChallengeSide stores a side's result inside an attempt transaction and
// reports false when that side already has one or the challenge is not
// accepted.
func claimChallengeSide(ctx context.Context, tx *sql.Tx, id, userID, performanceID int64) (bool, error) {
	// Each side's column is written at most once.
	res, err := tx.ExecContext(ctx, `
UPDATE challenges
SET challenger_performance_id = CASE WHEN challenger_id = ?1 THEN ?2 ELSE challenger_performance_id END,
    opponent_performance_id = CASE WHEN opponent_id = ?1 THEN ?2 ELSE opponent_performance_id END,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?3
  AND status = 'accepted'
  AND ((challenger_id = ?1 AND challenger_performance_id IS NULL)
    OR (opponent_id = ?1 AND opponent_performance_id IS NULL))
`, userID, performanceID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *challengeRepository) Complete(ctx context.Context, id int64, winnerID *int64) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("completing challenge: id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE challenges SET status = ?, winner_id = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = ?
`, models.ChallengeCompleted, nullableInt64(winnerID), id, models.ChallengeAccepted)
	if err != nil {
		log.Error("failed to complete challenge: %v", err)
	}
	return err
}

func (r *challengeRepository) ListActive(ctx context.Context, userID int64) ([]models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("listing active challenges: user_id=%d", userID)

	query, args, err := sqlBuilder.
		Select(challengeColumns...).
		From("challenges").
		Where(squirrel.Or{squirrel.Eq{"challenger_id": userID}, squirrel.Eq{"opponent_id": userID}}).
		Where(squirrel.Eq{"status": []string{string(models.ChallengePending), string(models.ChallengeAccepted)}}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list challenges: %v", err)
		return nil, err
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			log.Error("failed to scan challenge row: %v", err)
			return nil, err
		}
		challenges = append(challenges, *c)
	}

	log.Debug("found %d active challenges", len(challenges))
	return challenges, rows.Err()
}
