package httpErrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RestErr struct {
	ErrStatus int         `json:"status"`
	ErrError  string      `json:"error"`
	ErrCauses interface{} `json:"causes,omitempty"`
}

func (e RestErr) Error() string {
	return fmt.Sprintf("status: %d - errors: %s - causes: %v", e.ErrStatus, e.ErrError, e.ErrCauses)
}

func (e RestErr) Status() int {
	return e.ErrStatus
}

func NewRestError(status int, err string, causes interface{}) RestErr {
	return RestErr{
		ErrStatus: status,
		ErrError:  err,
		ErrCauses: causes,
	}
}

// ParseErrors maps domain errors onto HTTP status codes.
func ParseErrors(err error) RestErr {
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &validationErrs):
		return NewRestError(http.StatusBadRequest, models.ErrValidation.Error(), validationErrs.Error())
	case errors.As(err, &httpErr):
		return NewRestError(httpErr.Code, fmt.Sprint(httpErr.Message), nil)
	case errors.Is(err, models.ErrValidation):
		return NewRestError(http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, models.ErrNotFound):
		return NewRestError(http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, models.ErrSubmission), errors.Is(err, models.ErrRemoteOperation):
		return NewRestError(http.StatusBadGateway, err.Error(), nil)
	case errors.Is(err, models.ErrTransientPoll), errors.Is(err, models.ErrBackendUnavailable):
		return NewRestError(http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, models.ErrStorage):
		return NewRestError(http.StatusInternalServerError, err.Error(), nil)
	default:
		return NewRestError(http.StatusInternalServerError, "internal server error", nil)
	}
}

func ErrorResponse(err error) (int, interface{}) {
	restErr := ParseErrors(err)
	return restErr.Status(), restErr
}
