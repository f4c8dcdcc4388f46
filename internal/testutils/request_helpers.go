package testutils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// NewClaims builds the session an authenticated request would carry.
func NewClaims(tenantID, userID uuid.UUID, role models.Role) *models.Claims {
	return &models.Claims{UserID: userID, TenantID: tenantID, Role: role, Email: "test@example.com"}
}

func CreateTestRequestWithContext(method, target string, body io.Reader, claims *models.Claims, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// DecodeData unwraps the response envelope and decodes its data into dest.
func DecodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	if dest != nil && resp.Data != nil {
		// Marshall the Data from map[string]interface{} to bytes
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, dest))
	}

	return &resp
}
