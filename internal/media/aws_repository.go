package media

import (
	"context"

	"github.com/amankumarsingh77/media-studio/internal/models"
)

// AWSRepository is the blob store. It speaks the S3 API, which the Cloud
// Storage interoperability endpoint also serves.
type AWSRepository interface {
	PutObject(ctx context.Context, input *models.UploadInput) error
	GetObject(ctx context.Context, bucket, key string) (*models.BlobObject, error)
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]*models.BlobInfo, error)
}
