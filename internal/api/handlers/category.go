package handlers

import (
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

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

// CreateCategory godoc
//
//	@Summary		Create a category
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			category	body		models.CreateCategoryRequest					true	"Category"
//	@Success		201			{object}	response.APIResponse{data=models.Category}	"Category created"
//	@Failure		400			{object}	response.APIResponse							"Invalid input"
//	@Failure		409			{object}	response.APIResponse							"Name already used"
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid category input")
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), claims.TenantID, &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.String("categoryID", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=[]models.Category}	"Categories"
//	@Security	BearerAuth
//	@Router		/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		categories, err := h.categoryService.ListCategories(r.Context(), claims.TenantID)
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// UpdateCategory godoc
//
//	@Summary	Update a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string											true	"Category ID"
//	@Param		category	body		models.UpdateCategoryRequest					true	"Fields to change"
//	@Success	200			{object}	response.APIResponse{data=models.Category}	"Category updated"
//	@Failure	404			{object}	response.APIResponse							"Category not found"
//	@Security	BearerAuth
//	@Router		/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), claims.TenantID, id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.String("categoryID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}
