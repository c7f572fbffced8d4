package domain

import "time"

// Tweet is a single post owned by its author. Content is immutable after
// creation; only the author may delete it.
type Tweet struct {
	ID        int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

// TweetView is a tweet annotated for a specific viewer: the author's public
// identity, the total like count and whether the viewer has liked it.
type TweetView struct {
	Tweet
	AuthorUsername string
	LikeCount      int64
	ViewerHasLiked bool
}

// Like marks that a user liked a tweet. At most one per (user, tweet) pair.
type Like struct {
	UserID    int64
	TweetID   int64
	CreatedAt time.Time
}
