package videojobs

import (
	"context"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/google/uuid"
)

// Repository is the job store.
type Repository interface {
	// CreateJob inserts a PENDING job with no handle, outputs or error.
	CreateJob(ctx context.Context, prompt string, inputImageLocation *string) (*models.VideoJob, error)
	// GetJobByID returns models.ErrNotFound for unknown ids.
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error)
	// UpdateJob replaces the mutable fields in one statement. It returns
	// models.ErrJobTerminal when the stored job is already terminal.
	UpdateJob(ctx context.Context, job *models.VideoJob) (*models.VideoJob, error)
}
