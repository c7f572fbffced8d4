package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
)

const createTweetsTable = `
CREATE TABLE IF NOT EXISTS tweets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(author_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_tweets_author_id ON tweets(author_id);
`

// tweetViewSelect annotates each tweet with the author's public identity,
// the like count and whether the given viewer has liked it. Ordering is
// created_at then id, both descending, so equal timestamps still produce a
// stable newest-first result.
const tweetViewSelect = `
SELECT t.id, t.author_id, u.username, t.content, t.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id) AS like_count,
	EXISTS(SELECT 1 FROM likes l WHERE l.tweet_id = t.id AND l.user_id = ?) AS viewer_has_liked
FROM tweets t
JOIN users u ON u.id = t.author_id`

type TweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) repository.TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTweetsTable); err != nil {
		return fmt.Errorf("create tweets table: %w", err)
	}
	return nil
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (int64, error) {
	tweet.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tweets (author_id, content, created_at)
VALUES (?, ?, ?)`,
		tweet.AuthorID,
		tweet.Content,
		tweet.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert tweet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("tweet last insert id: %w", err)
	}
	tweet.ID = id
	return id, nil
}

func (r *TweetRepository) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := r.db.QueryRowContext(ctx, `
SELECT id, author_id, content, created_at
FROM tweets
WHERE id = ?`, id).Scan(
		&tweet.ID,
		&tweet.AuthorID,
		&tweet.Content,
		&tweet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("get tweet: %w", sql.ErrNoRows)
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}
	return &tweet, nil
}

func (r *TweetRepository) GetView(ctx context.Context, id, viewerID int64) (*domain.TweetView, error) {
	row := r.db.QueryRowContext(ctx, tweetViewSelect+` WHERE t.id = ?`, viewerID, id)
	view, err := scanTweetView(row)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE tweet_id = ?`, id); err != nil {
		return fmt.Errorf("delete tweet likes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tweet delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("delete tweet: %w", sql.ErrNoRows)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tweet delete: %w", err)
	}
	return nil
}

func (r *TweetRepository) ListAll(ctx context.Context, viewerID int64) ([]domain.TweetView, error) {
	rows, err := r.db.QueryContext(ctx,
		tweetViewSelect+` ORDER BY t.created_at DESC, t.id DESC`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()
	return collectTweetViews(rows)
}

func (r *TweetRepository) ListByAuthors(ctx context.Context, authorIDs []int64, viewerID int64) ([]domain.TweetView, error) {
	if len(authorIDs) == 0 {
		return []domain.TweetView{}, nil
	}

	placeholders := make([]string, len(authorIDs))
	args := make([]interface{}, 0, len(authorIDs)+1)
	args = append(args, viewerID)
	for i, id := range authorIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(
		tweetViewSelect+` WHERE t.author_id IN (%s) ORDER BY t.created_at DESC, t.id DESC`,
		strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tweets by authors: %w", err)
	}
	defer rows.Close()
	return collectTweetViews(rows)
}

func collectTweetViews(rows *sql.Rows) ([]domain.TweetView, error) {
	views := []domain.TweetView{}
	for rows.Next() {
		view, err := scanTweetView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, rows.Err()
}

func scanTweetView(scanner interface {
	Scan(dest ...any) error
}) (*domain.TweetView, error) {
	var view domain.TweetView
	if err := scanner.Scan(
		&view.ID,
		&view.AuthorID,
		&view.AuthorUsername,
		&view.Content,
		&view.CreatedAt,
		&view.LikeCount,
		&view.ViewerHasLiked,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("get tweet: %w", sql.ErrNoRows)
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}
	return &view, nil
}
