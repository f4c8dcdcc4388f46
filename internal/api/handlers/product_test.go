package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/handlers"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/services/mocks"
	"github.com/savedate/save-date/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateProduct(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleAdmin)
	validity := 3
	unit := expiry.Days

	t.Run("Success", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		reqBody := models.CreateProductRequest{CategoryID: uuid.New(), Name: "Tomato Sauce", Validity: &validity, ValidityUnit: &unit}
		created := &models.Product{ID: uuid.New(), TenantID: claims.TenantID, CategoryID: reqBody.CategoryID, Name: reqBody.Name,
			Validity: &validity, ValidityUnit: &unit, Status: models.ProductStatusActive}
		mockProductService.On("CreateProduct", mock.Anything, claims.TenantID, &reqBody).Return(created, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", bytes.NewReader(body), claims, nil)
		rr := httptest.NewRecorder()

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var got models.Product
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 3, *got.Validity)
		assert.Equal(t, expiry.Days, *got.ValidityUnit)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Unit", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		body := `{"category_id":"` + uuid.NewString() + `","name":"Rice","validity":2,"validity_unit":"weeks"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", strings.NewReader(body), claims, nil)
		rr := httptest.NewRecorder()

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Validity Above Bound", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		body := `{"category_id":"` + uuid.NewString() + `","name":"Rice","validity":3000000,"validity_unit":"hours"}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", strings.NewReader(body), claims, nil)
		rr := httptest.NewRecorder()

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products", strings.NewReader("{invalid json"), claims, nil)
		rr := httptest.NewRecorder()

		productHandler.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetProduct(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleMember)
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("GetProductByID", mock.Anything, claims.TenantID, id).
			Return(&models.Product{ID: id, TenantID: claims.TenantID, Name: "Rice"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products/"+id.String(), nil, claims, map[string]string{"id": id.String()})
		rr := httptest.NewRecorder()

		productHandler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Product
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, "Rice", got.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("GetProductByID", mock.Anything, claims.TenantID, id).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products/"+id.String(), nil, claims, map[string]string{"id": id.String()})
		rr := httptest.NewRecorder()

		productHandler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products/123", nil, claims, map[string]string{"id": "123"})
		rr := httptest.NewRecorder()

		productHandler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleAdmin)
	id := uuid.New()
	params := map[string]string{"id": id.String()}

	t.Run("Update", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		inactive := models.ProductStatusInactive
		reqBody := models.UpdateProductRequest{Status: &inactive}
		mockProductService.On("UpdateProduct", mock.Anything, claims.TenantID, id, &reqBody).
			Return(&models.Product{ID: id, Status: inactive}, nil).Once()

		body, _ := json.Marshal(reqBody)
		req := testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/v1/products/"+id.String(), bytes.NewReader(body), claims, params)
		rr := httptest.NewRecorder()

		productHandler.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Product
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, models.ProductStatusInactive, got.Status)
	})

	t.Run("Delete", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("DeleteProduct", mock.Anything, claims.TenantID, id).Return(nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/products/"+id.String(), nil, claims, params)
		rr := httptest.NewRecorder()

		productHandler.DeleteProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Delete - Unexpected Error Is Internal", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("DeleteProduct", mock.Anything, claims.TenantID, id).Return(errors.New("boom")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/products/"+id.String(), nil, claims, params)
		rr := httptest.NewRecorder()

		productHandler.DeleteProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListProducts(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleMember)

	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	products := []*models.Product{{ID: uuid.New(), Name: "Rice"}}
	mockProductService.On("ListProducts", mock.Anything, claims.TenantID, 2, 5).Return(products, 6, nil).Once()

	req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products?page=2&size=5", nil, claims, nil)
	rr := httptest.NewRecorder()

	productHandler.ListProducts().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.PaginatedResponse
	testutils.DecodeData(t, rr, &got)
	assert.Equal(t, 6, got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.PageSize)
	mockProductService.AssertExpectations(t)
}
