package generator

import (
	"context"
	"fmt"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
)

type unavailableGenerator struct {
	reason error
}

// NewUnavailable stands in for a backend client that failed to initialise.
// Every call fails with models.ErrBackendUnavailable.
func NewUnavailable(reason error) videojobs.Generator {
	return &unavailableGenerator{reason: reason}
}

func (u *unavailableGenerator) err() error {
	if u.reason == nil {
		return models.ErrBackendUnavailable
	}
	return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, u.reason)
}

func (u *unavailableGenerator) StartVideoGeneration(context.Context, *models.VideoGenerationRequest) (string, error) {
	return "", u.err()
}

func (u *unavailableGenerator) PollOperation(context.Context, string) (*models.OperationStatus, error) {
	return nil, u.err()
}
