package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRefreshLock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newTestRedis(t)
	repo := NewVideoJobRedisRepo(client)
	jobID := uuid.New()
	key := refreshLockPrefix + jobID.String()

	token, acquired, err := repo.AcquireRefreshLock(ctx, jobID, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.Minute, mr.TTL(key))

	_, acquired, err = repo.AcquireRefreshLock(ctx, jobID, time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	// Another job is independent.
	_, acquired, err = repo.AcquireRefreshLock(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, repo.ReleaseRefreshLock(ctx, jobID, "not-the-owner"))
	assert.True(t, mr.Exists(key))

	require.NoError(t, repo.ReleaseRefreshLock(ctx, jobID, token))
	assert.False(t, mr.Exists(key))

	_, acquired, err = repo.AcquireRefreshLock(ctx, jobID, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRefreshLock_Expires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newTestRedis(t)
	repo := NewVideoJobRedisRepo(client)
	jobID := uuid.New()

	_, acquired, err := repo.AcquireRefreshLock(ctx, jobID, 10*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(11 * time.Second)

	_, acquired, err = repo.AcquireRefreshLock(ctx, jobID, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRefreshLock_RedisDown(t *testing.T) {
	t.Parallel()
	mr, client := newTestRedis(t)
	repo := NewVideoJobRedisRepo(client)
	mr.Close()

	_, acquired, err := repo.AcquireRefreshLock(context.Background(), uuid.New(), time.Minute)
	assert.Error(t, err)
	assert.False(t, acquired)
}
