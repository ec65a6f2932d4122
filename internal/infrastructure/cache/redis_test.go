package cache_test

import (
	"context"
	"testing"
	"time"

	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_Refresh(t *testing.T) {
	ctx := context.Background()
	rdb, mr := testutil.Redis(t)
	c := cache.NewSessionCache(rdb)

	require.NoError(t, c.SaveRefresh(ctx, "walletA", "tok"))
	wallet, err := c.CheckRefresh(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "walletA", wallet)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("refresh_token:tok"))

	require.NoError(t, c.DeleteRefresh(ctx, "tok"))
	_, err = c.CheckRefresh(ctx, "tok")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestSessionCache_ChallengeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	rdb, mr := testutil.Redis(t)
	c := cache.NewSessionCache(rdb)

	require.NoError(t, c.SaveChallenge(ctx, "walletA", "n1"))
	nonce, err := c.PendingChallenge(ctx, "walletA")
	require.NoError(t, err)
	assert.Equal(t, "n1", nonce)

	nonce, err = c.PendingChallenge(ctx, "walletA")
	require.NoError(t, err, "reading does not consume")
	assert.Equal(t, "n1", nonce)

	require.NoError(t, c.ConsumeChallenge(ctx, "walletA", "n1"))
	assert.ErrorIs(t, c.ConsumeChallenge(ctx, "walletA", "n1"), cache.ErrNotFound)
	_, err = c.PendingChallenge(ctx, "walletA")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.SaveChallenge(ctx, "walletA", "n2"))
	mr.FastForward(6 * time.Minute)
	_, err = c.PendingChallenge(ctx, "walletA")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestSessionCache_ConsumeChallengeKeepsNewerNonce(t *testing.T) {
	ctx := context.Background()
	rdb, _ := testutil.Redis(t)
	c := cache.NewSessionCache(rdb)

	require.NoError(t, c.SaveChallenge(ctx, "walletA", "old"))
	require.NoError(t, c.SaveChallenge(ctx, "walletA", "new"))

	assert.ErrorIs(t, c.ConsumeChallenge(ctx, "walletA", "old"), cache.ErrNotFound)
	nonce, err := c.PendingChallenge(ctx, "walletA")
	require.NoError(t, err)
	assert.Equal(t, "new", nonce)
}

func TestAttemptStore(t *testing.T) {
	ctx := context.Background()
	rdb, _ := testutil.Redis(t)
	s := cache.NewAttemptStore(rdb)
	lessonID := uuid.New()

	a, err := s.Load(ctx, "w", lessonID, "s1")
	require.NoError(t, err)
	assert.Empty(t, a.Answers)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a.Select("q1", 2, start)
	require.NoError(t, s.Save(ctx, "w", lessonID, "s1", a))

	loaded, err := s.Load(ctx, "w", lessonID, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Answers["q1"])
	assert.True(t, start.Equal(loaded.Started["q1"]))

	require.NoError(t, s.Clear(ctx, "w", lessonID, "s1"))
	loaded, err = s.Load(ctx, "w", lessonID, "s1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Answers)
}
