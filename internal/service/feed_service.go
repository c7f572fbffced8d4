package service

import (
	"context"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
)

// FeedService assembles the viewer's home timeline: their own tweets plus
// tweets from everyone they follow, newest first.
type FeedService interface {
	Timeline(ctx context.Context, viewerID int64) ([]domain.TweetView, error)
}

type feedService struct {
	tweets  repository.TweetRepository
	follows repository.FollowRepository
}

func NewFeedService(tweets repository.TweetRepository, follows repository.FollowRepository) FeedService {
	return &feedService{
		tweets:  tweets,
		follows: follows,
	}
}

func (s *feedService) Timeline(ctx context.Context, viewerID int64) ([]domain.TweetView, error) {
	followeeIDs, err := s.follows.ListFolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// Self-inclusion: a user always sees their own tweets.
	authorIDs := append(followeeIDs, viewerID)

	return s.tweets.ListByAuthors(ctx, authorIDs, viewerID)
}
