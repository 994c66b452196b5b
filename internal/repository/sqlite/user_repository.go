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

var userColumns = userColumnsFor("")

// userColumnsFor lists the columns read by scanUser, qualified by alias when
// the users table is joined. The average score is derived from the counters.
func userColumnsFor(alias string) []string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	return []string{
		p + "id", p + "username", p + "email", p + "password_hash",
		p + "first_name", p + "last_name", p + "avatar", p + "bio",
		p + "total_quizzes", p + "total_score",
		"CASE WHEN " + p + "total_quizzes > 0 THEN CAST(" + p + "total_score AS REAL) / " + p + "total_quizzes ELSE 0 END",
		p + "streak", p + "level", p + "experience",
		p + "is_admin", p + "created_at",
	}
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Profile.FirstName, &u.Profile.LastName, &u.Profile.Avatar, &u.Profile.Bio,
		&u.Stats.TotalQuizzes, &u.Stats.TotalScore, &u.Stats.AverageScore,
		&u.Stats.Streak, &u.Stats.Level, &u.Stats.Experience,
		&u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: username=%s", user.Username)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash, first_name, last_name, avatar, bio, is_admin)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, user.Username, user.Email, user.PasswordHash,
		user.Profile.FirstName, user.Profile.LastName, user.Profile.Avatar, user.Profile.Bio,
		user.IsAdmin)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("username or email already taken: %s", user.Username)
			return 0, repository.ErrDuplicate
		}
		log.Error("failed to create user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("user created: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByLogin matches either the username or the (lower-cased) email.
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by login: %s", login)

	return r.getOne(ctx, squirrel.Or{
		squirrel.Eq{"username": login},
		squirrel.Eq{"email": strings.ToLower(login)},
	})
}

func (r *userRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	query, args, err := sqlBuilder.Select(userColumns...).From("users").Where(pred).Limit(1).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Search(ctx context.Context, term string, limit int) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("searching users: term=%q limit=%d", term, limit)

	query := sqlBuilder.Select(userColumns...).From("users")
	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		query = query.Where(squirrel.Or{
			squirrel.Expr(`username LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`first_name LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`last_name LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if limit <= 0 {
		limit = 20
	}
	query = query.OrderBy("username ASC").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to search users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, u.Summary())
	}

	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, profile models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating profile: user_id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE users SET first_name = ?, last_name = ?, avatar = ?, bio = ?
WHERE id = ?
`, profile.FirstName, profile.LastName, profile.Avatar, profile.Bio, id)
	if err != nil {
		log.Error("failed to update profile: %v", err)
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
