package videojobs

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitVideoJob() echo.HandlerFunc
	GetJobStatus() echo.HandlerFunc
}
