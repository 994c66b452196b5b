package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

var performanceColumns = []string{
	"p.id", "p.user_id", "p.quiz_id", "p.score", "p.total_questions", "p.correct_answers",
	"p.time_spent", "p.experience_gained", "COALESCE(p.attempt_token, '')", "p.completed_at",
}

type performanceRepository struct {
	db *sql.DB
}

// NewPerformanceRepository creates a new PerformanceRepository implementation
func NewPerformanceRepository(db *sql.DB) repository.PerformanceRepository {
	return &performanceRepository{db: db}
}

func scanPerformance(row rowScanner, extra ...any) (*models.PerformanceRecord, error) {
	var p models.PerformanceRecord
	dest := []any{&p.ID, &p.UserID, &p.QuizID, &p.Score, &p.TotalQuestions, &p.CorrectAnswers,
		&p.TimeSpent, &p.ExperienceGained, &p.AttemptToken, &p.CompletedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *performanceRepository) CreateWithStats(ctx context.Context, record models.PerformanceRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("performance_repo")
	log.Debug("recording attempt: user_id=%d quiz_id=%d score=%d", record.UserID, record.QuizID, record.Score)

	completedAt := record.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO performances (user_id, quiz_id, score, total_questions, correct_answers, time_spent, experience_gained, attempt_token, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)
`, record.UserID, record.QuizID, record.Score, record.TotalQuestions, record.CorrectAnswers,
			record.TimeSpent, record.ExperienceGained, record.AttemptToken, completedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO performance_answers (performance_id, position, question_id, selected_option, is_correct, time_spent)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for pos, a := range record.Answers {
			var selected sql.NullInt64
			if a.SelectedOption != nil {
				selected = sql.NullInt64{Int64: int64(*a.SelectedOption), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, id, pos, a.QuestionID, selected, a.IsCorrect, a.TimeSpent); err != nil {
				return err
			}
		}

		// Counters are incremented in place so concurrent attempts never lose updates.
		res, err = tx.ExecContext(ctx, `
UPDATE users
SET total_quizzes = total_quizzes + 1,
    total_score = total_score + ?,
    experience = experience + ?
WHERE id = ?
`, record.Score, record.ExperienceGained, record.UserID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("update stats for user %d: %w", record.UserID, sql.ErrNoRows)
		}

		if record.ChallengeID == 0 {
			return nil
		}
		claimed, err := claimChallengeSide(ctx, tx, record.ChallengeID, record.UserID, id)
		if err != nil {
			return err
		}
		if !claimed {
			return repository.ErrChallengeSideTaken
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Debug("attempt token already recorded: user_id=%d", record.UserID)
			return 0, err
		}
		if errors.Is(err, repository.ErrChallengeSideTaken) {
			log.Debug("challenge side already recorded: challenge=%d user_id=%d", record.ChallengeID, record.UserID)
			return 0, err
		}
		log.Error("failed to record attempt: %v", err)
		return 0, err
	}

	log.Debug("attempt recorded: id=%d", id)
	return id, nil
}

func (r *performanceRepository) Get(ctx context.Context, id int64) (*models.PerformanceRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("performance_repo")
	log.Debug("getting performance: id=%d", id)

	return r.getOne(ctx, squirrel.Eq{"p.id": id})
}

func (r *performanceRepository) FindByAttemptToken(ctx context.Context, userID int64, token string) (*models.PerformanceRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("performance_repo")
	log.Debug("finding performance by attempt token: user_id=%d", userID)

	return r.getOne(ctx, squirrel.Eq{"p.user_id": userID, "p.attempt_token": token})
}

func (r *performanceRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*models.PerformanceRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("performance_repo")

	query, args, err := sqlBuilder.Select(performanceColumns...).From("performances p").Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPerformance(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("performance not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get performance: %v", err)
		return nil, err
	}

	answers, err := r.loadAnswers(ctx, []int64{p.ID})
	if err != nil {
		log.Error("failed to load answers: %v", err)
		return nil, err
	}
	p.Answers = answers[p.ID]
	return p, nil
}

func (r *performanceRepository) ListByUser(ctx context.Context, userID int64) ([]models.PerformanceWithQuiz, error) {
	log := logger.FromContext(ctx).WithPrefix("performance_repo")
	log.Debug("listing performances: user_id=%d", userID)

	query, args, err := sqlBuilder.
		Select(append(performanceColumns, "q.title", "q.topic", "q.difficulty")...).
		From("performances p").
		Join("quizzes q ON q.id = p.quiz_id").
		Where(squirrel.Eq{"p.user_id": userID}).
		OrderBy("p.completed_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list performances: %v", err)
		return nil, err
	}

	out := []models.PerformanceWithQuiz{}
	var ids []int64
	for rows.Next() {
		var item models.PerformanceWithQuiz
		p, err := scanPerformance(rows, &item.QuizTitle, &item.QuizTopic, &item.QuizDifficulty)
		if err != nil {
			rows.Close()
			log.Error("failed to scan performance row: %v", err)
			return nil, err
		}
		item.PerformanceRecord = *p
		out = append(out, item)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	answers, err := r.loadAnswers(ctx, ids)
	if err != nil {
		log.Error("failed to load answers: %v", err)
		return nil, err
	}
	for i := range out {
		out[i].Answers = answers[out[i].ID]
	}

	log.Debug("found %d performances", len(out))
	return out, nil
}

func (r *performanceRepository) loadAnswers(ctx context.Context, performanceIDs []int64) (map[int64][]models.AnswerRecord, error) {
	out := make(map[int64][]models.AnswerRecord, len(performanceIDs))
	if len(performanceIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.
		Select("performance_id", "question_id", "selected_option", "is_correct", "time_spent").
		From("performance_answers").
		Where(squirrel.Eq{"performance_id": performanceIDs}).
		OrderBy("performance_id", "position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid      int64
			a        models.AnswerRecord
			selected sql.NullInt64
		)
		if err := rows.Scan(&pid, &a.QuestionID, &selected, &a.IsCorrect, &a.TimeSpent); err != nil {
			return nil, err
		}
		if selected.Valid {
			v := int(selected.Int64)
			a.SelectedOption = &v
		}
		out[pid] = append(out[pid], a)
	}
	return out, rows.Err()
}
