package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("request body cannot be empty")
	ErrBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
)

// DecodeJSONBody reads at most maxBodyBytes of JSON into dest.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	// one extra byte tells an exact fit apart from an oversized body
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	switch {
	case len(body) == 0:
		return ErrEmptyBody
	case len(body) > maxBodyBytes:
		return ErrBodyTooLarge
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ValidateStruct runs the validator tags on data. Tag failures come back as
// validator.ValidationErrors so callers can list them per field.
func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fmt.Errorf("validation error: %w", validationErrs)
	}

	return fmt.Errorf("unexpected validation error: %w", err)
}
