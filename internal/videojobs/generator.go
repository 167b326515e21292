package videojobs

import (
	"context"

	"github.com/amankumarsingh77/media-studio/internal/models"
)

// Generator is the remote video generation backend.
type Generator interface {
	// StartVideoGeneration starts a long-running operation and returns its handle.
	StartVideoGeneration(ctx context.Context, req *models.VideoGenerationRequest) (string, error)
	// PollOperation reads the current state of an operation.
	PollOperation(ctx context.Context, operationHandle string) (*models.OperationStatus, error)
}
