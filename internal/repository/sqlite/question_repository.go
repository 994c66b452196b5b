package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

var questionColumns = []string{
	"q.id", "q.topic", "q.difficulty", "q.text", "q.points", "q.explanation",
	"q.tags", "q.created_by", "q.is_approved", "q.created_at",
}

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var (
		q         models.Question
		tags      string
		createdBy sql.NullInt64
	)
	err := row.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.Text, &q.Points, &q.Explanation,
		&tags, &createdBy, &q.IsApproved, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.CreatedBy = int64Ptr(createdBy)
	q.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, err
		}
	}
	return &q, nil
}

func (r *questionRepository) Create(ctx context.Context, question models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("creating question: topic=%s difficulty=%s options=%d", question.Topic, question.Difficulty, len(question.Options))

	tags := question.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO questions (topic, difficulty, text, points, explanation, tags, created_by, is_approved)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, question.Topic, question.Difficulty, question.Text, question.EffectivePoints(), question.Explanation,
			string(tagsJSON), nullableInt64(question.CreatedBy), question.IsApproved)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO question_options (question_id, position, text, is_correct) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, opt := range question.Options {
			if _, err := stmt.ExecContext(ctx, id, i, opt.Text, opt.IsCorrect); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create question: %v", err)
		return 0, err
	}

	log.Debug("question created: id=%d", id)
	return id, nil
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%d", id)

	query, args, err := sqlBuilder.Select(questionColumns...).From("questions q").Where(squirrel.Eq{"q.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}

	options, err := loadOptions(ctx, r.db, []int64{q.ID})
	if err != nil {
		log.Error("failed to load options: %v", err)
		return nil, err
	}
	q.Options = options[q.ID]
	return q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: topic=%s difficulty=%s", filter.Topic, filter.Difficulty)

	query := sqlBuilder.Select(questionColumns...).From("questions q")
	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"q.topic": filter.Topic})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"q.difficulty": filter.Difficulty})
	}
	if filter.Approved != nil {
		query = query.Where(squirrel.Eq{"q.is_approved": *filter.Approved})
	}
	query = query.OrderBy("q.created_at DESC", "q.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	questions, err := queryQuestions(ctx, r.db, sqlStr, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}

	log.Debug("found %d questions", len(questions))
	return questions, nil
}

func (r *questionRepository) Approve(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("approving question: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE questions SET is_approved = 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to approve question: %v", err)
	}
	return err
}

func (r *questionRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("checking %d question ids", len(ids))

	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sqlBuilder.Select("id").From("questions").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to check question ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}

// queryQuestions runs a query selecting questionColumns and attaches options.
func queryQuestions(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	questions := []models.Question{}
	var ids []int64
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		questions = append(questions, *q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Close before the next query; the pool has a single connection.
	rows.Close()

	options, err := loadOptions(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Options = options[questions[i].ID]
	}
	return questions, nil
}

func loadOptions(ctx context.Context, db *sql.DB, questionIDs []int64) (map[int64][]models.Option, error) {
	out := make(map[int64][]models.Option, len(questionIDs))
	if len(questionIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.
		Select("question_id", "text", "is_correct").
		From("question_options").
		Where(squirrel.Eq{"question_id": questionIDs}).
		OrderBy("question_id", "position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			qid int64
			opt models.Option
		)
		if err := rows.Scan(&qid, &opt.Text, &opt.IsCorrect); err != nil {
			return nil, err
		}
		out[qid] = append(out[qid], opt)
	}
	return out, rows.Err()
}
