package utils

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/errors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePagination reads page and size, clamping them to sane bounds.
func ParsePagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}

	return page, min(size, MaxPageSize)
}

func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, errors.BadRequestError("Invalid " + name + " format").WithError(err)
	}

	return id, nil
}
