package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
)

const createLikesTable = `
CREATE TABLE IF NOT EXISTS likes (
	user_id INTEGER NOT NULL,
	tweet_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, tweet_id),
	FOREIGN KEY(user_id) REFERENCES users(id),
	FOREIGN KEY(tweet_id) REFERENCES tweets(id)
);
CREATE INDEX IF NOT EXISTS idx_likes_tweet_id ON likes(tweet_id);
`

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) repository.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLikesTable); err != nil {
		return fmt.Errorf("create likes table: %w", err)
	}
	return nil
}

// Create inserts the like and reports whether a row was added. A duplicate
// like surfaces as the primary key violation, which is swallowed here: the
// pair is already in the desired state.
func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) (bool, error) {
	like.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO likes (user_id, tweet_id, created_at)
VALUES (?, ?, ?)`,
		like.UserID,
		like.TweetID,
		like.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert like: %w", err)
	}
	return true, nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, tweetID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND tweet_id = ?`, userID, tweetID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("like delete rows affected: %w", err)
	}
	return aff > 0, nil
}

func (r *LikeRepository) Count(ctx context.Context, tweetID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE tweet_id = ?`, tweetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
