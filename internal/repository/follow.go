package repository

import "context"

// FollowRepository manages the follow graph. Create and Delete report whether
// an edge was actually added or removed; duplicate and missing edges are
// decided by the store's uniqueness constraint, not by a prior read.
type FollowRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	Delete(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFolloweeIDs(ctx context.Context, followerID int64) ([]int64, error)
	ListFollowerIDs(ctx context.Context, followeeID int64) ([]int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
}
