package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

var quizColumns = []string{
	"id", "title", "description", "topic", "difficulty", "time_limit",
	"max_attempts", "is_active", "created_by", "created_at",
}

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func scanQuiz(row rowScanner) (*models.Quiz, error) {
	var (
		q         models.Quiz
		createdBy sql.NullInt64
	)
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Topic, &q.Difficulty, &q.TimeLimit,
		&q.MaxAttempts, &q.IsActive, &createdBy, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.CreatedBy = int64Ptr(createdBy)
	return &q, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz models.Quiz) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("creating quiz: title=%s questions=%d", quiz.Title, len(quiz.QuestionIDs))

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO quizzes (title, description, topic, difficulty, time_limit, max_attempts, is_active, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, quiz.Title, quiz.Description, quiz.Topic, quiz.Difficulty, quiz.TimeLimit, quiz.MaxAttempts,
			quiz.IsActive, nullableInt64(quiz.CreatedBy))
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO quiz_questions (quiz_id, position, question_id) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for pos, qid := range quiz.QuestionIDs {
			if _, err := stmt.ExecContext(ctx, id, pos, qid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create quiz: %v", err)
		return 0, err
	}

	log.Debug("quiz created: id=%d", id)
	return id, nil
}

func (r *quizRepository) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%d", id)

	query, args, err := sqlBuilder.Select(quizColumns...).From("quizzes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, err
	}

	if err := r.attachQuestions(ctx, quiz); err != nil {
		log.Error("failed to load quiz questions: %v", err)
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepository) List(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: topic=%s difficulty=%s active_only=%v", filter.Topic, filter.Difficulty, filter.ActiveOnly)

	query := sqlBuilder.Select(quizColumns...).From("quizzes")
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	query = query.OrderBy("created_at DESC", "id DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}

	quizzes := []models.Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			rows.Close()
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range quizzes {
		if err := r.attachQuestions(ctx, &quizzes[i]); err != nil {
			log.Error("failed to load questions for quiz %d: %v", quizzes[i].ID, err)
			return nil, err
		}
	}

	log.Debug("found %d quizzes", len(quizzes))
	return quizzes, nil
}

// attachQuestions loads the quiz's questions in their stored order.
func (r *quizRepository) attachQuestions(ctx context.Context, quiz *models.Quiz) error {
	query := `SELECT ` + strings.Join(questionColumns, ", ") + `
FROM quiz_questions qq
JOIN questions q ON q.id = qq.question_id
WHERE qq.quiz_id = ?
ORDER BY qq.position ASC`

	questions, err := queryQuestions(ctx, r.db, query, quiz.ID)
	if err != nil {
		return err
	}
	quiz.Questions = questions
	quiz.QuestionIDs = make([]int64, len(questions))
	for i, q := range questions {
		quiz.QuestionIDs[i] = q.ID
	}
	return nil
}
