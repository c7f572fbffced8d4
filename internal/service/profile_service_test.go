package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Profile(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewProfileService(repos.users, repos.tweets, repos.follows)
	follows := NewFollowService(repos.follows, repos.users)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")
	carol := createTestUser(t, ctx, repos.users, "carol")

	createTestTweet(t, ctx, repos.tweets, bob.ID, "older")
	createTestTweet(t, ctx, repos.tweets, bob.ID, "newer")

	require.NoError(t, follows.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, follows.Follow(ctx, carol.ID, bob.ID))
	require.NoError(t, follows.Follow(ctx, bob.ID, alice.ID))

	t.Run("unknown username fails", func(t *testing.T) {
		_, err := svc.Profile(ctx, "nobody", alice.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("aggregates tweets and counts", func(t *testing.T) {
		profile, err := svc.Profile(ctx, "bob", alice.ID)
		require.NoError(t, err)

		assert.Equal(t, bob.ID, profile.ID)
		assert.Equal(t, "bob", profile.Username)
		assert.Equal(t, []string{"newer", "older"}, tweetContents(profile.Tweets))
		assert.Equal(t, int64(2), profile.FollowerCount)
		assert.Equal(t, int64(1), profile.FollowingCount)
		assert.True(t, profile.ViewerIsFollowing)
	})

	t.Run("non-follower viewer", func(t *testing.T) {
		stranger := createTestUser(t, ctx, repos.users, "stranger")
		profile, err := svc.Profile(ctx, "bob", stranger.ID)
		require.NoError(t, err)
		assert.False(t, profile.ViewerIsFollowing)
	})

	t.Run("own profile never follows itself", func(t *testing.T) {
		profile, err := svc.Profile(ctx, "bob", bob.ID)
		require.NoError(t, err)
		assert.False(t, profile.ViewerIsFollowing)
	})
}
