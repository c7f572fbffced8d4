package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"twitter-clone/internal/repository"
)

const createFollowsTable = `
CREATE TABLE IF NOT EXISTS follows (
	follower_id INTEGER NOT NULL,
	followee_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (follower_id, followee_id),
	CHECK (follower_id != followee_id),
	FOREIGN KEY(follower_id) REFERENCES users(id),
	FOREIGN KEY(followee_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_follows_followee_id ON follows(followee_id);
`

type FollowRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) repository.FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFollowsTable); err != nil {
		return fmt.Errorf("create follows table: %w", err)
	}
	return nil
}

// Create inserts the edge and reports whether it was added. An existing edge
// trips the primary key constraint and yields (false, nil); the caller
// decides whether that is an error.
func (r *FollowRepository) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO follows (follower_id, followee_id, created_at)
VALUES (?, ?, ?)`,
		followerID, followeeID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert follow: %w", err)
	}
	return true, nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("follow delete rows affected: %w", err)
	}
	return aff > 0, nil
}

func (r *FollowRepository) ListFolloweeIDs(ctx context.Context, followerID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY followee_id`, followerID)
}

func (r *FollowRepository) ListFollowerIDs(ctx context.Context, followeeID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY follower_id`, followeeID)
}

func (r *FollowRepository) listIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query follow edges: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow edge: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE followee_id = ?`, userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID)
}

func (r *FollowRepository) count(ctx context.Context, query string, arg int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&count); err != nil {
		return 0, fmt.Errorf("count follows: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`,
		followerID, followeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("follow exists: %w", err)
	}
	return exists, nil
}
