package videojobs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RedisRepository holds the per-job refresh lock that keeps concurrent
// status checks from polling the backend for the same job at once.
type RedisRepository interface {
	AcquireRefreshLock(ctx context.Context, jobID uuid.UUID, ttl time.Duration) (token string, acquired bool, err error)
	ReleaseRefreshLock(ctx context.Context, jobID uuid.UUID, token string) error
}
