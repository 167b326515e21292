package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/amankumarsingh77/media-studio/pkg/httpErrors"
	"github.com/amankumarsingh77/media-studio/pkg/utils"
	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware requires the configured API key. It is a no-op when no key is configured.
func (mw *MiddlewareManager) APIKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		expected := mw.cfg.Server.APIKey
		if expected == "" {
			return next(c)
		}
		provided := c.Request().Header.Get(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			mw.logger.Warnf("api key middleware: rejected request from %s RequestID: %s", utils.GetIPAddress(c), utils.GetRequestID(c))
			return c.JSON(http.StatusUnauthorized, httpErrors.NewRestError(http.StatusUnauthorized, "Unauthorized", nil))
		}
		return next(c)
	}
}
