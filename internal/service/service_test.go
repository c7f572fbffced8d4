package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"twitter-clone/internal/domain"
	"twitter-clone/internal/repository"
	"twitter-clone/internal/repository/sqlite"
)

type testRepos struct {
	users   repository.UserRepository
	tweets  repository.TweetRepository
	likes   repository.LikeRepository
	follows repository.FollowRepository
}

func setupRepos(t *testing.T) (context.Context, testRepos) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := testRepos{
		users:   sqlite.NewUserRepository(db),
		tweets:  sqlite.NewTweetRepository(db),
		likes:   sqlite.NewLikeRepository(db),
		follows: sqlite.NewFollowRepository(db),
	}

	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.tweets.Init(ctx))
	require.NoError(t, repos.likes.Init(ctx))
	require.NoError(t, repos.follows.Init(ctx))

	return ctx, repos
}

func createTestUser(t *testing.T, ctx context.Context, users repository.UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	_, err := users.Create(ctx, user)
	require.NoError(t, err)
	return user
}

func createTestTweet(t *testing.T, ctx context.Context, tweets repository.TweetRepository, authorID int64, content string) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{AuthorID: authorID, Content: content}
	_, err := tweets.Create(ctx, tweet)
	require.NoError(t, err)
	return tweet
}
