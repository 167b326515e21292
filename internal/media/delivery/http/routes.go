package http

import (
	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/labstack/echo/v4"
)

func MapMediaRoutes(mediaGroup *echo.Group, h media.Handler) {
	mediaGroup.GET("", h.ListMedia())
	mediaGroup.GET("/files/*", h.ServeMedia())
}
