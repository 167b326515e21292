package server

import (
	"fmt"
	"net/http"

	mediaHttp "github.com/amankumarsingh77/media-studio/internal/media/delivery/http"
	mediaRepository "github.com/amankumarsingh77/media-studio/internal/media/repository"
	mediaUsecase "github.com/amankumarsingh77/media-studio/internal/media/usecase"
	apiMiddlewares "github.com/amankumarsingh77/media-studio/internal/middleware"
	videoJobsHttp "github.com/amankumarsingh77/media-studio/internal/videojobs/delivery/http"
	videoJobsRepository "github.com/amankumarsingh77/media-studio/internal/videojobs/repository"
	videoJobsUsecase "github.com/amankumarsingh77/media-studio/internal/videojobs/usecase"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	jobRepo := videoJobsRepository.NewVideoJobRepo(s.db)
	jobRedisRepo := videoJobsRepository.NewVideoJobRedisRepo(s.redisClient)
	awsRepo := mediaRepository.NewAwsRepository(s.s3Client)

	videoJobUC := videoJobsUsecase.NewVideoJobUseCase(s.cfg, jobRepo, jobRedisRepo, s.generator, awsRepo, s.logger)
	mediaUC := mediaUsecase.NewMediaUseCase(s.cfg, awsRepo, s.logger)

	videoJobHandlers := videoJobsHttp.NewVideoJobHandler(s.cfg, videoJobUC, s.logger)
	mediaHandlers := mediaHttp.NewMediaHandler(mediaUC, s.logger)

	origins := s.cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mw := apiMiddlewares.NewMiddlewareManager(s.cfg, origins, s.logger)

	e.Use(middleware.RequestID())
	e.Use(mw.RequestLoggerMiddleware)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID, "X-API-Key"},
		MaxAge:       300,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1 << 10,
		DisablePrintStack: true,
		DisableStackAll:   true,
	}))
	e.Use(middleware.BodyLimit(bodyLimit(s.cfg.Jobs.MaxUploadBytes)))

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/video")
	mediaGroup := v1.Group("/media")

	videoJobsHttp.MapVideoJobRoutes(videoGroup, videoJobHandlers, mw)
	mediaHttp.MapMediaRoutes(mediaGroup, mediaHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		ok, usage := utils.CheckCPUUsage(s.cfg.Server.MaxCPUUsage)
		status := "OK"
		if !ok {
			status = "DEGRADED"
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  status,
			"cpu":     fmt.Sprintf("%.2f%%", usage),
			"version": s.cfg.Server.AppVersion,
		})
	})
	return nil
}

// bodyLimit leaves room for form fields on top of the largest upload.
func bodyLimit(maxUploadBytes int64) string {
	if maxUploadBytes <= 0 {
		return "25M"
	}
	return fmt.Sprintf("%dK", maxUploadBytes/1024+1024)
}
