package http

import (
	"github.com/amankumarsingh77/media-studio/internal/middleware"
	"github.com/amankumarsingh77/media-studio/internal/videojobs"
	"github.com/labstack/echo/v4"
)

func MapVideoJobRoutes(videoGroup *echo.Group, h videojobs.Handler, mw *middleware.MiddlewareManager) {
	videoGroup.Use(mw.APIKeyMiddleware)
	videoGroup.POST("/jobs", h.SubmitVideoJob())
	videoGroup.GET("/jobs/:job_id/status", h.GetJobStatus())
}
