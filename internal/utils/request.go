package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/savedate/save-date/internal/api/middleware"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/utils/response"
)

// ParseAndValidate writes the error response itself and reports whether the
// handler may continue.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		middleware.LoggerFromContext(r.Context()).Warn("Invalid request body",
			slog.String("endpoint", r.URL.Path), slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	return Validate(w, dest, validate)
}

// Validate is the validation half of ParseAndValidate, for input that does
// not come from the request body.
func Validate(w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.ValidationError("invalid input data"))
		return false
	}

	return true
}
