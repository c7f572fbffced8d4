package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewFollowService(repos.follows, repos.users)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")

	t.Run("creates edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

		followees, err := svc.FolloweeIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{bob.ID}, followees)

		followers, err := svc.FollowerIDs(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{alice.ID}, followers)
	})

	t.Run("duplicate follow fails", func(t *testing.T) {
		err := svc.Follow(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrAlreadyFollowing)
	})

	t.Run("self follow fails", func(t *testing.T) {
		err := svc.Follow(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, ErrSelfFollow)
	})

	t.Run("unknown followee fails", func(t *testing.T) {
		err := svc.Follow(ctx, alice.ID, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx, repos := setupRepos(t)
	svc := NewFollowService(repos.follows, repos.users)

	alice := createTestUser(t, ctx, repos.users, "alice")
	bob := createTestUser(t, ctx, repos.users, "bob")

	t.Run("without edge fails", func(t *testing.T) {
		err := svc.Unfollow(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNotFollowing)
	})

	t.Run("removes edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
		require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

		followees, err := svc.FolloweeIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, followees)

		// a second unfollow observes the missing edge
		err = svc.Unfollow(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrNotFollowing)
	})
}
