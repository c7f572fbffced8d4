package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
)

// MaxTweetLength bounds tweet content, counted in runes.
const MaxTweetLength = 280

// TweetService coordinates tweet and like operations backed by repositories.
type TweetService interface {
	CreateTweet(ctx context.Context, authorID int64, content string) (*domain.Tweet, error)
	GetTweet(ctx context.Context, id, viewerID int64) (*domain.TweetView, error)
	ListTweets(ctx context.Context, viewerID int64) ([]domain.TweetView, error)
	DeleteTweet(ctx context.Context, requesterID, tweetID int64) error
	Like(ctx context.Context, tweetID, userID int64) error
	Unlike(ctx context.Context, tweetID, userID int64) error
}

type tweetService struct {
	tweets repository.TweetRepository
	likes  repository.LikeRepository
}

func NewTweetService(tweets repository.TweetRepository, likes repository.LikeRepository) TweetService {
	return &tweetService{
		tweets: tweets,
		likes:  likes,
	}
}

func (s *tweetService) CreateTweet(ctx context.Context, authorID int64, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxTweetLength {
		return nil, ErrContentTooLong
	}

	tweet := &domain.Tweet{
		AuthorID: authorID,
		Content:  content,
	}

	if _, err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *tweetService) GetTweet(ctx context.Context, id, viewerID int64) (*domain.TweetView, error) {
	view, err := s.tweets.GetView(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return view, nil
}

func (s *tweetService) ListTweets(ctx context.Context, viewerID int64) ([]domain.TweetView, error) {
	return s.tweets.ListAll(ctx, viewerID)
}

func (s *tweetService) DeleteTweet(ctx context.Context, requesterID, tweetID int64) error {
	tweet, err := s.tweets.Get(ctx, tweetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTweetNotFound
		}
		return err
	}
	if tweet.AuthorID != requesterID {
		return ErrNotTweetAuthor
	}

	// A concurrent delete may win between the ownership check and here; the
	// loser observes not-found instead of a silent success.
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTweetNotFound
		}
		return err
	}
	return nil
}

// Like is idempotent: liking an already-liked tweet is a no-op, so concurrent
// double-submission never surfaces as a failure.
func (s *tweetService) Like(ctx context.Context, tweetID, userID int64) error {
	if _, err := s.tweets.Get(ctx, tweetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTweetNotFound
		}
		return err
	}

	like := &domain.Like{UserID: userID, TweetID: tweetID}
	_, err := s.likes.Create(ctx, like)
	return err
}

// Unlike tolerates a missing like the same way: already-gone is success.
func (s *tweetService) Unlike(ctx context.Context, tweetID, userID int64) error {
	_, err := s.likes.Delete(ctx, userID, tweetID)
	return err
}
