package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"storyreel/internal/logging"
)

// apiError is the JSON error envelope returned by every failing endpoint.
type apiError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []fieldError `json:"details,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// httpErrorHandler maps errors to the envelope. Echo's own HTTP errors keep
// their status; validation errors become 400 with field detail; everything
// else is a 500.
func httpErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, payload := mapError(logger, err)
		if jsonErr := c.JSON(status, map[string]apiError{"error": payload}); jsonErr != nil && logger != nil {
			logger.Error("failed to send error response", logging.Error(jsonErr))
		}
	}
}

func mapError(logger *slog.Logger, err error) (int, apiError) {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, apiError{
			Code:    http.StatusText(echoErr.Code),
			Message: msg,
		}
	}

	var vErr *validationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, apiError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: []fieldError{{Field: vErr.Field, Message: vErr.Message}},
		}
	}

	if logger != nil {
		logger.Error("unhandled request error", logging.Error(err))
	}
	return http.StatusInternalServerError, apiError{
		Code:    "internal_error",
		Message: "An unexpected error occurred",
	}
}
