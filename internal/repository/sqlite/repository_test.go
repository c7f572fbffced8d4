package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitter-clone/internal/domain"
)

func setupTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewTweetRepository(db).Init(ctx))
	require.NoError(t, NewLikeRepository(db).Init(ctx))
	require.NoError(t, NewFollowRepository(db).Init(ctx))

	return ctx, db
}

func mustCreateUser(t *testing.T, ctx context.Context, db *sql.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	_, err := NewUserRepository(db).Create(ctx, user)
	require.NoError(t, err)
	return user
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx, db := setupTestDB(t)
	repo := NewUserRepository(db)

	mustCreateUser(t, ctx, db, "alice")

	_, err := repo.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = repo.Create(ctx, &domain.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	ctx, db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFollowRepository_DuplicateAndMissingEdges(t *testing.T) {
	ctx, db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := mustCreateUser(t, ctx, db, "alice")
	bob := mustCreateUser(t, ctx, db, "bob")

	created, err := repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// duplicate edge trips the primary key, reported as not-created
	created, err = repo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	deleted, err := repo.Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLikeRepository_DuplicateIsBenign(t *testing.T) {
	ctx, db := setupTestDB(t)
	likes := NewLikeRepository(db)
	tweets := NewTweetRepository(db)

	alice := mustCreateUser(t, ctx, db, "alice")
	tweet := &domain.Tweet{AuthorID: alice.ID, Content: "hi"}
	_, err := tweets.Create(ctx, tweet)
	require.NoError(t, err)

	created, err := likes.Create(ctx, &domain.Like{UserID: alice.ID, TweetID: tweet.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = likes.Create(ctx, &domain.Like{UserID: alice.ID, TweetID: tweet.ID})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := likes.Count(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTweetRepository_DeleteCascadesLikes(t *testing.T) {
	ctx, db := setupTestDB(t)
	tweets := NewTweetRepository(db)
	likes := NewLikeRepository(db)

	alice := mustCreateUser(t, ctx, db, "alice")
	bob := mustCreateUser(t, ctx, db, "bob")

	tweet := &domain.Tweet{AuthorID: alice.ID, Content: "hi"}
	_, err := tweets.Create(ctx, tweet)
	require.NoError(t, err)

	_, err = likes.Create(ctx, &domain.Like{UserID: bob.ID, TweetID: tweet.ID})
	require.NoError(t, err)

	require.NoError(t, tweets.Delete(ctx, tweet.ID))

	count, err := likes.Count(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = tweets.Delete(ctx, tweet.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTweetRepository_ListByAuthors(t *testing.T) {
	ctx, db := setupTestDB(t)
	tweets := NewTweetRepository(db)

	alice := mustCreateUser(t, ctx, db, "alice")
	bob := mustCreateUser(t, ctx, db, "bob")

	for _, content := range []string{"a1", "a2"} {
		_, err := tweets.Create(ctx, &domain.Tweet{AuthorID: alice.ID, Content: content})
		require.NoError(t, err)
	}
	_, err := tweets.Create(ctx, &domain.Tweet{AuthorID: bob.ID, Content: "b1"})
	require.NoError(t, err)

	t.Run("empty author set", func(t *testing.T) {
		views, err := tweets.ListByAuthors(ctx, nil, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("filters and orders newest first", func(t *testing.T) {
		views, err := tweets.ListByAuthors(ctx, []int64{alice.ID}, alice.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "a2", views[0].Content)
		assert.Equal(t, "a1", views[1].Content)
		assert.Equal(t, "alice", views[0].AuthorUsername)
	})

	t.Run("multiple authors interleaved", func(t *testing.T) {
		views, err := tweets.ListByAuthors(ctx, []int64{alice.ID, bob.ID}, alice.ID)
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "b1", views[0].Content)
	})
}
