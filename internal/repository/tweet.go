package repository

import (
	"context"

	"twitter-clone/internal/domain"
)

// TweetRepository exposes persistence operations for tweets. Listing methods
// return viewer-annotated rows ordered newest-first (created_at, then id, both
// descending) so callers get a deterministic timeline.
type TweetRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tweet *domain.Tweet) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Tweet, error)
	GetView(ctx context.Context, id, viewerID int64) (*domain.TweetView, error)
	// Delete removes the tweet and all its likes in one transaction.
	// Returns sql.ErrNoRows (wrapped) when the tweet is already gone.
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, viewerID int64) ([]domain.TweetView, error)
	ListByAuthors(ctx context.Context, authorIDs []int64, viewerID int64) ([]domain.TweetView, error)
}

// LikeRepository manages the like relation. Create and Delete report whether
// they changed anything so callers can tell "done" from "already done"
// without racing a separate existence check.
type LikeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, like *domain.Like) (bool, error)
	Delete(ctx context.Context, userID, tweetID int64) (bool, error)
	Count(ctx context.Context, tweetID int64) (int64, error)
}
