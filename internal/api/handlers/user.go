package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/utils"
	"github.com/savedate/save-date/internal/utils/response"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange email and password for a bearer token scoped to the user's tenant
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest								true	"Login credentials"
//	@Success		200			{object}	response.APIResponse{data=models.LoginResponse}	"Logged in"
//	@Failure		400			{object}	response.APIResponse							"Invalid input"
//	@Failure		401			{object}	response.APIResponse							"Invalid credentials"
//	@Failure		403			{object}	response.APIResponse							"Tenant suspended"
//	@Failure		429			{object}	response.APIResponse							"Too many attempts"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				logger.Warn("Login rate limited", slog.Int("retryAfter", resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message).WithDetail(fmt.Sprintf("retry after %d seconds", resp.RetryAfter)))
				return
			}

			logger.Warn("Invalid credentials", slog.Int("remainingTries", resp.RemainingTries))
			response.Error(w, errors.UnauthorizedError(resp.Message).WithDetail(fmt.Sprintf("%d attempts remaining", resp.RemainingTries)))
			return
		}

		logger.Info("User logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// CreateUser godoc
//
//	@Summary		Create a user
//	@Description	Add a user to the caller's tenant (admin only)
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.CreateUserRequest					true	"New user"
//	@Success		201		{object}	response.APIResponse{data=models.User}	"User created"
//	@Failure		400		{object}	response.APIResponse						"Invalid input"
//	@Failure		401		{object}	response.APIResponse						"Authentication required"
//	@Failure		403		{object}	response.APIResponse						"Admin role required"
//	@Failure		409		{object}	response.APIResponse						"Email already registered"
//	@Security		BearerAuth
//	@Router			/users [post]
func (h *UserHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized user creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid user input")
			return
		}

		user, err := h.userService.CreateUser(r.Context(), claims.TenantID, &req)
		if err != nil {
			logger.Error("Failed to create user", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User created", slog.String("newUserID", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Profile godoc
//
//	@Summary		Current user
//	@Description	Return the authenticated user's profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	response.APIResponse{data=models.User}	"Profile"
//	@Failure		401	{object}	response.APIResponse						"Authentication required"
//	@Failure		404	{object}	response.APIResponse						"User not found"
//	@Security		BearerAuth
//	@Router			/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.TenantID, claims.UserID)
		if err != nil {
			logger.Warn("Failed to load profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
