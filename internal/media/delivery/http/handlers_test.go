package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMediaUC struct {
	filter     *models.MediaFilter
	pagination *utils.Pagination
	opened     string
}

func (s *stubMediaUC) ListMedia(_ context.Context, filter *models.MediaFilter, pagination *utils.Pagination) (*models.MediaList, error) {
	s.filter, s.pagination = filter, pagination
	if filter.MediaType != "" && filter.MediaType != models.MediaTypeImage && filter.MediaType != models.MediaTypeVideo {
		return nil, fmt.Errorf("bad media type: %w", models.ErrValidation)
	}
	return &models.MediaList{
		MediaFiles: []*models.MediaFile{{Name: "cat.png", Type: models.MediaTypeImage}},
		TotalCount: 1,
		TotalPages: 1,
		Page:       pagination.Page,
		PageSize:   pagination.Size,
	}, nil
}

func (s *stubMediaUC) OpenMedia(_ context.Context, objectName string) (*models.BlobObject, error) {
	s.opened = objectName
	if !strings.HasSuffix(objectName, ".mp4") {
		return nil, fmt.Errorf("object %s: %w", objectName, models.ErrNotFound)
	}
	return &models.BlobObject{
		Body:          io.NopCloser(strings.NewReader("video-bytes")),
		ContentType:   "video/mp4",
		ContentLength: 11,
	}, nil
}

func newTestEcho(uc *stubMediaUC) *echo.Echo {
	e := echo.New()
	MapMediaRoutes(e.Group("/api/v1/media"), NewMediaHandler(uc, logger.NewNopLogger()))
	return e
}

func TestListMediaHandler(t *testing.T) {
	t.Parallel()
	uc := &stubMediaUC{}
	e := newTestEcho(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/media?media_type=image&name=cat&page=2&size=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MediaTypeImage, uc.filter.MediaType)
	assert.Equal(t, "cat", uc.filter.NameContains)
	assert.Equal(t, 2, uc.pagination.Page)
	assert.Equal(t, 10, uc.pagination.Size)

	var body models.MediaList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalCount)
	assert.Equal(t, "cat.png", body.MediaFiles[0].Name)
}

func TestListMediaHandler_BadRequests(t *testing.T) {
	t.Parallel()
	e := newTestEcho(&stubMediaUC{})

	for _, target := range []string{
		"/api/v1/media?page=abc",
		"/api/v1/media?media_type=audio",
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestServeMediaHandler(t *testing.T) {
	t.Parallel()
	uc := &stubMediaUC{}
	e := newTestEcho(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/media/files/media_studio_uploads/video_outputs/j1/sample%200.mp4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "media_studio_uploads/video_outputs/j1/sample 0.mp4", uc.opened)
	assert.Equal(t, "video/mp4", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "11", rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, "video-bytes", rec.Body.String())
}

func TestServeMediaHandler_NotFound(t *testing.T) {
	t.Parallel()
	e := newTestEcho(&stubMediaUC{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/media/files/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
