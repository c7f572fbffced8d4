package service

import (
	"context"

	"twitter-clone/internal/repository"
)

// FollowService manages the follow graph between users.
type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	FolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
	FollowerIDs(ctx context.Context, userID int64) ([]int64, error)
}

type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) FollowService {
	return &followService{
		follows: follows,
		users:   users,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	exists, err := s.users.ExistsWithID(ctx, followeeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	// The edge's primary key decides duplicates; no read-then-write race.
	created, err := s.follows.Create(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !created {
		return ErrAlreadyFollowing
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	deleted, err := s.follows.Delete(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFollowing
	}
	return nil
}

func (s *followService) FolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.follows.ListFolloweeIDs(ctx, userID)
}

func (s *followService) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.follows.ListFollowerIDs(ctx, userID)
}
