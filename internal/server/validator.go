package server

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator wraps go-playground/validator for echo.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// Validate checks a bound request struct and converts the first violation
// into a field-level HTTP error.
func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return &validationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
}

type validationError struct {
	Field   string
	Message string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}
