package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/amankumarsingh77/media-studio/pkg/httpErrors"
	"github.com/amankumarsingh77/media-studio/pkg/logger"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type mediaHandler struct {
	mediaUC media.UseCase
	logger  logger.Logger
}

func NewMediaHandler(mediaUC media.UseCase, log logger.Logger) media.Handler {
	return &mediaHandler{
		mediaUC: mediaUC,
		logger:  log,
	}
}

func (h *mediaHandler) ListMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := &models.MediaFilter{}
		if err := c.Bind(filter); err != nil {
			return c.JSON(httpErrors.ErrorResponse(errors.Wrap(models.ErrValidation, "invalid query parameters")))
		}
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(errors.Wrap(models.ErrValidation, err.Error())))
		}
		list, err := h.mediaUC.ListMedia(c.Request().Context(), filter, pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *mediaHandler) ServeMedia() echo.HandlerFunc {
	return func(c echo.Context) error {
		objectName, err := url.PathUnescape(c.Param("*"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(errors.Wrap(models.ErrValidation, "invalid object path")))
		}
		obj, err := h.mediaUC.OpenMedia(c.Request().Context(), objectName)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		defer obj.Body.Close()

		if obj.ContentLength > 0 {
			c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(obj.ContentLength, 10))
		}
		contentType := obj.ContentType
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		h.logger.Debugf("Serving media %s RequestID: %s", objectName, utils.GetRequestID(c))
		return c.Stream(http.StatusOK, contentType, obj.Body)
	}
}
