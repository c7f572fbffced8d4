package service

import (
	"context"
	"database/sql"
	"errors"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
)

// ProfileService produces a user's public profile as seen by a viewer.
type ProfileService interface {
	Profile(ctx context.Context, targetUsername string, viewerID int64) (*domain.Profile, error)
}

type profileService struct {
	users   repository.UserRepository
	tweets  repository.TweetRepository
	follows repository.FollowRepository
}

func NewProfileService(users repository.UserRepository, tweets repository.TweetRepository, follows repository.FollowRepository) ProfileService {
	return &profileService{
		users:   users,
		tweets:  tweets,
		follows: follows,
	}
}

func (s *profileService) Profile(ctx context.Context, targetUsername string, viewerID int64) (*domain.Profile, error) {
	user, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tweets, err := s.tweets.ListByAuthors(ctx, []int64{user.ID}, viewerID)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// Self-follow is disallowed, so this is always false for one's own profile.
	viewerIsFollowing, err := s.follows.Exists(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		AvatarURL:         user.AvatarURL,
		CreatedAt:         user.CreatedAt,
		Tweets:            tweets,
		FollowerCount:     followerCount,
		FollowingCount:    followingCount,
		ViewerIsFollowing: viewerIsFollowing,
	}, nil
}
