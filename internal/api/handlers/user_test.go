package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/handlers"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/services/mocks"
	"github.com/savedate/save-date/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	reqBody := models.LoginRequest{Email: "cook@example.com", Password: "P@ssword123!"}

	t.Run("Success", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		expected := &models.LoginResponse{Success: true, Token: "signed-token", ExpiresIn: 86400}
		mockUserService.On("Login", mock.Anything, &reqBody).Return(expected, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.LoginResponse
		resp := testutils.DecodeData(t, rr, &got)
		assert.True(t, resp.Success)
		assert.Equal(t, "signed-token", got.Token)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, &reqBody).
			Return(&models.LoginResponse{Success: false, RemainingTries: 2, Message: "Invalid email or password"}, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		resp := testutils.DecodeData(t, rr, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
		assert.Equal(t, []string{"2 attempts remaining"}, resp.Error.Details)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, &reqBody).
			Return(&models.LoginResponse{Success: false, RetryAfter: 30, Message: "Too many login attempts"}, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		resp := testutils.DecodeData(t, rr, nil)
		assert.Equal(t, []string{"retry after 30 seconds"}, resp.Error.Details)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login",
			strings.NewReader(`{"email":"not-an-email","password":"x"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockUserService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestCreateUser(t *testing.T) {
	admin := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleAdmin)
	reqBody := models.CreateUserRequest{Name: "Line Cook", Email: "line@example.com", Password: "P@ssword123!"}

	t.Run("Success", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		created := &models.User{ID: uuid.New(), TenantID: admin.TenantID, Name: reqBody.Name, Email: reqBody.Email, Role: models.RoleMember}
		mockUserService.On("CreateUser", mock.Anything, admin.TenantID, &reqBody).Return(created, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/users", bytes.NewReader(body), admin, nil)
		rr := httptest.NewRecorder()

		userHandler.CreateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var got models.User
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, admin.TenantID, got.TenantID)
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("CreateUser", mock.Anything, admin.TenantID, &reqBody).
			Return(nil, appErrors.DuplicateEntryError("User with this email already exists")).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/users", bytes.NewReader(body), admin, nil)
		rr := httptest.NewRecorder()

		userHandler.CreateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Unauthorized (No Claims)", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		userHandler.CreateUser().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockUserService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfile(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleMember)

	t.Run("Success", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		user := &models.User{ID: claims.UserID, TenantID: claims.TenantID, Name: "Ana"}
		mockUserService.On("GetUserByID", mock.Anything, claims.TenantID, claims.UserID).Return(user, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, claims, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.User
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, "Ana", got.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockUserService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetUserByID", mock.Anything, claims.TenantID, claims.UserID).
			Return(nil, appErrors.NotFoundError("User not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, claims, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
