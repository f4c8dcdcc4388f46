package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/savedate/save-date/internal/errors"
)

// APIResponse is the envelope of every JSON body the API writes.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data})
}

// Error renders an AppError as is. Anything else becomes an opaque 500 so
// driver or client errors never reach the caller.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, APIResponse{Error: &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}})

		return
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" {
		body.Details = []string{appErr.Detail}
	}

	writeJSON(w, appErr.StatusCode, APIResponse{Error: body})
}

// ValidationError lists one message per failed field.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	details := make([]string, 0, len(errs))

	for _, fe := range errs {
		details = append(details, fieldMessage(fe))
	}

	writeJSON(w, http.StatusBadRequest, APIResponse{Error: &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: details,
	}})
}

var tagMessages = map[string]string{
	"email": "must be a valid email address",
	"min":   "must be at least %s characters",
	"max":   "must be at most %s characters",
	"gt":    "must be greater than %s",
	"gte":   "must be at least %s",
	"lt":    "must be less than %s",
	"lte":   "must be at most %s",
	"oneof": "must be one of [%s]",
	"uuid":  "must be a valid UUID",
}

func fieldMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return fmt.Sprintf("Field %s is required", fe.Field())
	}

	format, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("Field %s is invalid: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}

	if !strings.Contains(format, "%s") {
		return fmt.Sprintf("Field %s %s", fe.Field(), format)
	}

	return fmt.Sprintf("Field %s "+format, fe.Field(), fe.Param())
}
