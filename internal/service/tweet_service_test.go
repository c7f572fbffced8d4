package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetService_CreateTweet(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewTweetService(repos.tweets, repos.likes)

	alice := createTestUser(t, ctx, repos.users, "alice")

	t.Run("creates tweet", func(t *testing.T) {
		tweet, err := svc.CreateTweet(ctx, alice.ID, "  hello world  ")
		require.NoError(t, err)
		assert.NotZero(t, tweet.ID)
		assert.Equal(t, "hello world", tweet.Content)
		assert.Equal(t, alice.ID, tweet.AuthorID)
	})

	t.Run("empty content fails", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, alice.ID, "   ")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("overlong content fails", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, alice.ID, strings.Repeat("a", MaxTweetLength+1))
		assert.ErrorIs(t, err, ErrContentTooLong)
	})

	t.Run("content at the bound is accepted", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, alice.ID, strings.Repeat("a", MaxTweetLength))
		assert.NoError(t, err)
	})
}

func TestTweetService_DeleteTweet(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewTweetService(repos.tweets, repos.likes)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")
	tweet := createTestTweet(t, ctx, repos.tweets, alice.ID, "to be deleted")

	require.NoError(t, svc.Like(ctx, tweet.ID, bob.ID))

	t.Run("non-author is rejected", func(t *testing.T) {
		err := svc.DeleteTweet(ctx, bob.ID, tweet.ID)
		assert.ErrorIs(t, err, ErrNotTweetAuthor)
	})

	t.Run("author deletes and likes cascade", func(t *testing.T) {
		require.NoError(t, svc.DeleteTweet(ctx, alice.ID, tweet.ID))

		_, err := svc.GetTweet(ctx, tweet.ID, alice.ID)
		assert.ErrorIs(t, err, ErrTweetNotFound)

		count, err := repos.likes.Count(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("second delete observes not found", func(t *testing.T) {
		err := svc.DeleteTweet(ctx, alice.ID, tweet.ID)
		assert.ErrorIs(t, err, ErrTweetNotFound)
	})
}

func TestTweetService_Like(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewTweetService(repos.tweets, repos.likes)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")
	tweet := createTestTweet(t, ctx, repos.tweets, alice.ID, "like me")

	t.Run("unknown tweet fails", func(t *testing.T) {
		err := svc.Like(ctx, 9999, bob.ID)
		assert.ErrorIs(t, err, ErrTweetNotFound)
	})

	t.Run("double like counts once", func(t *testing.T) {
		require.NoError(t, svc.Like(ctx, tweet.ID, bob.ID))
		require.NoError(t, svc.Like(ctx, tweet.ID, bob.ID))

		view, err := svc.GetTweet(ctx, tweet.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.LikeCount)
		assert.True(t, view.ViewerHasLiked)
	})

	t.Run("other viewers see the count but not the flag", func(t *testing.T) {
		view, err := svc.GetTweet(ctx, tweet.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.LikeCount)
		assert.False(t, view.ViewerHasLiked)
	})
}

func TestTweetService_Unlike(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewTweetService(repos.tweets, repos.likes)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")
	tweet := createTestTweet(t, ctx, repos.tweets, alice.ID, "unlike me")

	t.Run("without like is benign", func(t *testing.T) {
		assert.NoError(t, svc.Unlike(ctx, tweet.ID, bob.ID))
	})

	t.Run("removes like", func(t *testing.T) {
		require.NoError(t, svc.Like(ctx, tweet.ID, bob.ID))
		require.NoError(t, svc.Unlike(ctx, tweet.ID, bob.ID))

		view, err := svc.GetTweet(ctx, tweet.ID, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, view.LikeCount)
		assert.False(t, view.ViewerHasLiked)

		// double unlike stays benign
		assert.NoError(t, svc.Unlike(ctx, tweet.ID, bob.ID))
	})
}
