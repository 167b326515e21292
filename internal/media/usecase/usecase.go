package usecase

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/amankumarsingh77/media-studio/internal/config"
	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/pkg/errors"
)

type mediaUC struct {
	cfg     *config.Config
	awsRepo media.AWSRepository
	locator *media.Locator
	logger  logger.Logger
}

func NewMediaUseCase(cfg *config.Config, awsRepo media.AWSRepository, log logger.Logger) media.UseCase {
	return &mediaUC{
		cfg:     cfg,
		awsRepo: awsRepo,
		locator: media.NewLocator(cfg),
		logger:  log,
	}
}

func (m *mediaUC) ListMedia(ctx context.Context, filter *models.MediaFilter, pagination *utils.Pagination) (*models.MediaList, error) {
	if filter == nil {
		filter = &models.MediaFilter{}
	}
	if err := utils.ValidateStruct(ctx, filter); err != nil {
		m.logger.Errorf("ListMedia - ValidateStruct error: %v", err)
		return nil, errors.Wrapf(models.ErrValidation, "invalid media filter: %v", err)
	}
	if pagination == nil {
		pagination = &utils.Pagination{}
	}
	pagination.Normalize()

	objects, err := m.awsRepo.ListObjects(ctx, m.locator.Bucket(), m.locator.ObjectPrefix())
	if err != nil {
		m.logger.Errorf("ListMedia - ListObjects error: %v", err)
		return nil, errors.Wrap(err, "mediaUC.ListMedia.ListObjects")
	}

	nameFilter := strings.ToLower(strings.TrimSpace(filter.NameContains))
	files := make([]*models.MediaFile, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		kind, ok := media.ClassifyObject(obj.Key)
		if !ok || (filter.MediaType != "" && kind != filter.MediaType) {
			continue
		}
		name := path.Base(obj.Key)
		if nameFilter != "" && !strings.Contains(strings.ToLower(name), nameFilter) {
			continue
		}
		url, _ := m.locator.ProxyURL(obj.Key)
		files = append(files, &models.MediaFile{
			Path:      m.locator.URI(obj.Key),
			Name:      name,
			Type:      kind,
			URL:       url,
			Size:      obj.Size,
			UpdatedAt: obj.LastModified,
		})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})

	total := len(files)
	start := pagination.GetOffset()
	if start > total {
		start = total
	}
	end := start + pagination.GetLimit()
	if end > total {
		end = total
	}

	return &models.MediaList{
		MediaFiles: files[start:end],
		TotalCount: total,
		TotalPages: utils.GetTotalPages(total, pagination.GetSize()),
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), total, pagination.GetSize()),
	}, nil
}

func (m *mediaUC) OpenMedia(ctx context.Context, objectName string) (*models.BlobObject, error) {
	name := strings.TrimLeft(objectName, "/")
	if !media.IsSafeObjectName(name) {
		return nil, errors.Wrapf(models.ErrValidation, "invalid object name %q", objectName)
	}
	obj, err := m.awsRepo.GetObject(ctx, m.locator.Bucket(), name)
	if err != nil {
		m.logger.Errorf("OpenMedia - GetObject error: %v", err)
		return nil, errors.Wrap(err, "mediaUC.OpenMedia.GetObject")
	}
	if obj.ContentType == "" || obj.ContentType == "application/octet-stream" {
		if ct := media.ContentTypeFor(name); ct != "" {
			obj.ContentType = ct
		}
	}
	return obj, nil
}
