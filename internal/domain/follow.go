package domain

import "time"

// Follow is a directed edge in the follow graph: follower sees followee's
// tweets in their timeline. Unique per ordered pair, self-edges disallowed.
type Follow struct {
	FollowerID int64
	FolloweeID int64
	CreatedAt  time.Time
}
