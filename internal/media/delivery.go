package media

import "github.com/labstack/echo/v4"

type Handler interface {
	ListMedia() echo.HandlerFunc
	ServeMedia() echo.HandlerFunc
}
