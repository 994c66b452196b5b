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

var friendRequestColumns = []string{
	"fr.id", "fr.sender_id", "fr.receiver_id", "fr.message", "fr.status", "fr.created_at", "fr.updated_at",
}

type friendRepository struct {
	db *sql.DB
}

// NewFriendRepository creates a new FriendRepository implementation
func NewFriendRepository(db *sql.DB) repository.FriendRepository {
	return &friendRepository{db: db}
}

func friendRequestDest(fr *models.FriendRequest) []any {
	return []any{&fr.ID, &fr.SenderID, &fr.ReceiverID, &fr.Message, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt}
}

func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64, message string) (*models.FriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("creating friend request: sender=%d receiver=%d", senderID, receiverID)

	var fr models.FriendRequest
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM friend_requests
WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
`, senderID, receiverID, receiverID, senderID).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return repository.ErrDuplicate
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO friend_requests (sender_id, receiver_id, message, status)
VALUES (?, ?, ?, ?)
`, senderID, receiverID, message, models.FriendRequestPending)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		query, args, err := sqlBuilder.Select(friendRequestColumns...).From("friend_requests fr").Where(squirrel.Eq{"fr.id": id}).ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, query, args...).Scan(friendRequestDest(&fr)...)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Debug("friend request already exists between %d and %d", senderID, receiverID)
			return nil, err
		}
		log.Error("failed to create friend request: %v", err)
		return nil, err
	}

	log.Debug("friend request created: id=%d", fr.ID)
	return &fr, nil
}

func (r *friendRepository) GetRequest(ctx context.Context, id int64) (*models.FriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("getting friend request: id=%d", id)

	query, args, err := sqlBuilder.Select(friendRequestColumns...).From("friend_requests fr").Where(squirrel.Eq{"fr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var fr models.FriendRequest
	err = r.db.QueryRowContext(ctx, query, args...).Scan(friendRequestDest(&fr)...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("friend request not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get friend request: %v", err)
		return nil, err
	}
	return &fr, nil
}

func (r *friendRepository) Respond(ctx context.Context, id int64, status models.FriendRequestStatus) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("responding to friend request: id=%d status=%s", id, status)

	applied := false
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var senderID, receiverID int64
		if err := tx.QueryRowContext(ctx, `SELECT sender_id, receiver_id FROM friend_requests WHERE id = ?`, id).
			Scan(&senderID, &receiverID); err != nil {
			return err
		}

		// accepted and rejected are terminal.
		res, err := tx.ExecContext(ctx, `
UPDATE friend_requests SET status = ?1, updated_at = CURRENT_TIMESTAMP
WHERE id = ?2 AND status IN ('pending', ?1)
`, status, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		applied = true

		if status != models.FriendRequestAccepted {
			return nil
		}
		// Both directions; the primary key keeps the relation a set.
		_, err = tx.ExecContext(ctx, `
INSERT OR IGNORE INTO friendships (user_id, friend_id) VALUES (?, ?), (?, ?)
`, senderID, receiverID, receiverID, senderID)
		return err
	})
	if err != nil {
		log.Error("failed to respond to friend request: %v", err)
		return false, err
	}
	return applied, nil
}

func (r *friendRepository) ListPending(ctx context.Context, receiverID int64) ([]models.PendingFriendRequest, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("listing pending friend requests: receiver=%d", receiverID)

	query, args, err := sqlBuilder.
		Select(append(friendRequestColumns, userColumnsFor("u")...)...).
		From("friend_requests fr").
		Join("users u ON u.id = fr.sender_id").
		Where(squirrel.Eq{"fr.receiver_id": receiverID, "fr.status": models.FriendRequestPending}).
		OrderBy("fr.created_at DESC", "fr.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list pending friend requests: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.PendingFriendRequest{}
	for rows.Next() {
		var item models.PendingFriendRequest
		sender, err := scanUser(prefixedScanner{row: rows, prefix: friendRequestDest(&item.FriendRequest)})
		if err != nil {
			log.Error("failed to scan friend request row: %v", err)
			return nil, err
		}
		item.Sender = sender.Summary()
		out = append(out, item)
	}

	log.Debug("found %d pending friend requests", len(out))
	return out, rows.Err()
}

func (r *friendRepository) ListFriends(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("listing friends: user_id=%d", userID)

	query, args, err := sqlBuilder.
		Select(userColumnsFor("u")...).
		From("friendships f").
		Join("users u ON u.id = f.friend_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("u.username ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list friends: %v", err)
		return nil, err
	}
	defer rows.Close()

	friends := []models.UserSummary{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan friend row: %v", err)
			return nil, err
		}
		friends = append(friends, u.Summary())
	}

	log.Debug("found %d friends", len(friends))
	return friends, rows.Err()
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("friend_repo")
	log.Debug("checking friendship: %d <-> %d", userID, otherID)

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM friendships WHERE user_id = ? AND friend_id = ?`, userID, otherID).Scan(&n)
	if err != nil {
		log.Error("failed to check friendship: %v", err)
		return false, err
	}
	return n > 0, nil
}
