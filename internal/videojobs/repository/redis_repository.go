package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const refreshLockPrefix = "video_job:refresh:lock:"

// Deletes the lock only if it still holds our token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type videoJobRedisRepo struct {
	redisClient *redis.Client
}

func NewVideoJobRedisRepo(redisClient *redis.Client) videojobs.RedisRepository {
	return &videoJobRedisRepo{
		redisClient: redisClient,
	}
}

func (v *videoJobRedisRepo) AcquireRefreshLock(ctx context.Context, jobID uuid.UUID, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()
	locked, err := v.redisClient.SetNX(ctx, refreshLockPrefix+jobID.String(), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to set refresh lock for job %s: %w", jobID, err)
	}
	if !locked {
		return "", false, nil
	}
	return token, true, nil
}

func (v *videoJobRedisRepo) ReleaseRefreshLock(ctx context.Context, jobID uuid.UUID, token string) error {
	if err := releaseLockScript.Run(ctx, v.redisClient, []string{refreshLockPrefix + jobID.String()}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release refresh lock for job %s: %w", jobID, err)
	}
	return nil
}
