package httpErrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	type required struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(required{})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"struct validation", validationErr, http.StatusBadRequest},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too large"), http.StatusRequestEntityTooLarge},
		{"validation", errors.Wrap(models.ErrValidation, "prompt is required"), http.StatusBadRequest},
		{"not found", fmt.Errorf("video job x: %w", models.ErrNotFound), http.StatusNotFound},
		{"submission", errors.Wrap(models.ErrSubmission, "job x"), http.StatusBadGateway},
		{"remote operation", models.ErrRemoteOperation, http.StatusBadGateway},
		{"transient poll", errors.Wrap(models.ErrTransientPoll, "job x"), http.StatusServiceUnavailable},
		{"backend unavailable", models.ErrBackendUnavailable, http.StatusServiceUnavailable},
		{"storage", fmt.Errorf("failed to list: %w", models.ErrStorage), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status, body := ErrorResponse(tc.err)
			assert.Equal(t, tc.want, status)
			restErr, ok := body.(RestErr)
			assert.True(t, ok)
			assert.Equal(t, tc.want, restErr.Status())
		})
	}

	_, body := ErrorResponse(errors.New("secret connection string"))
	assert.Equal(t, "internal server error", body.(RestErr).ErrError)
}
