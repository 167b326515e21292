package videojobs

import (
	"context"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/google/uuid"
)

type UseCase interface {
	// SubmitVideoJob may return a non-nil job together with an error: once a
	// job record exists, failures leave it FAILED and still queryable.
	SubmitVideoJob(ctx context.Context, input *models.SubmitVideoJobInput) (*models.VideoJob, error)
	RefreshVideoJob(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error)
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.VideoJobStatus, error)
	StatusView(job *models.VideoJob) *models.VideoJobStatus
}
