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

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Register a product with its optional validity and ambient setting times
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest					true	"Product"
//	@Success		201		{object}	response.APIResponse{data=models.Product}	"Product created"
//	@Failure		400		{object}	response.APIResponse						"Invalid input"
//	@Failure		404		{object}	response.APIResponse						"Category not found"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized product creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims.TenantID, &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productID", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string										true	"Product ID"
//	@Success	200	{object}	response.APIResponse{data=models.Product}	"Product"
//	@Failure	400	{object}	response.APIResponse						"Invalid product ID"
//	@Failure	404	{object}	response.APIResponse						"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			logger.Warn("Invalid product ID", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), claims.TenantID, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//
//	@Summary	Update a product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string										true	"Product ID"
//	@Param		product	body		models.UpdateProductRequest					true	"Fields to change"
//	@Success	200		{object}	response.APIResponse{data=models.Product}	"Product updated"
//	@Failure	400		{object}	response.APIResponse						"Invalid input"
//	@Failure	404		{object}	response.APIResponse						"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{id} [patch]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
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

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product update input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), claims.TenantID, id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productID", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary		Delete a product
//	@Description	Soft-delete a product; its print history and alerts are kept
//	@Tags			Products
//	@Param			id	path	string	true	"Product ID"
//	@Success		204	"Product deleted"
//	@Failure		404	{object}	response.APIResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
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

		if err := h.productService.DeleteProduct(r.Context(), claims.TenantID, id); err != nil {
			logger.Error("Failed to delete product", slog.String("productID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productID", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProducts godoc
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Param		page	query		int													false	"Page number"	default(1)
//	@Param		size	query		int													false	"Page size"		default(10)
//	@Success	200		{object}	response.APIResponse{data=models.PaginatedResponse}	"Products"
//	@Security	BearerAuth
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		products, total, err := h.productService.ListProducts(r.Context(), claims.TenantID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
