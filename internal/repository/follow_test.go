package repository

import (
	"context"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_FollowUnfollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed
	following, err = repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
	following, err = repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing again is a no-op
	require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
}

func TestFollowRepository_Follow_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.Follow(ctx, carol.ID, bob.ID))
	require.NoError(t, repo.Follow(ctx, bob.ID, alice.ID))

	followers, err := repo.CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.CountFollowing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)

	followers, err = repo.CountFollowers(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), followers)
}
