package media

import (
	"context"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
)

type UseCase interface {
	ListMedia(ctx context.Context, filter *models.MediaFilter, pagination *utils.Pagination) (*models.MediaList, error)
	OpenMedia(ctx context.Context, objectName string) (*models.BlobObject, error)
}
