package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type videoJobRepo struct {
	db *sqlx.DB
}

func NewVideoJobRepo(db *sqlx.DB) videojobs.Repository {
	return &videoJobRepo{
		db: db,
	}
}

func (v *videoJobRepo) CreateJob(ctx context.Context, prompt string, inputImageLocation *string) (*models.VideoJob, error) {
	job := &models.VideoJob{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoJobQuery,
		uuid.New(),
		prompt,
		inputImageLocation,
		models.JobStatusPending,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to create video job: %w: %v", models.ErrStorage, err)
	}
	return job, nil
}

func (v *videoJobRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.VideoJob, error) {
	job := &models.VideoJob{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoJobByIDQuery,
		jobID,
	).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video job %s: %w", jobID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video job by id: %w: %v", models.ErrStorage, err)
	}
	return job, nil
}

func (v *videoJobRepo) UpdateJob(ctx context.Context, job *models.VideoJob) (*models.VideoJob, error) {
	updated := &models.VideoJob{}
	err := v.db.QueryRowxContext(
		ctx,
		updateVideoJobQuery,
		job.ID,
		job.Status,
		job.OperationHandle,
		job.OutputLocations,
		job.ErrorDetail,
	).StructScan(updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update video job: %w: %v", models.ErrStorage, err)
	}
	// No row matched: either the job does not exist or it is already terminal.
	if _, getErr := v.GetJobByID(ctx, job.ID); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("video job %s: %w", job.ID, models.ErrJobTerminal)
}
