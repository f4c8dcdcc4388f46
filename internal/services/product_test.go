package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/cache"
	cachemocks "github.com/savedate/save-date/internal/cache/mocks"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/repositories/mocks"
	service "github.com/savedate/save-date/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	repo         *mocks.ProductRepository
	categoryRepo *mocks.CategoryRepository
	cache        *cachemocks.Cache
	service      service.ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		repo:         new(mocks.ProductRepository),
		categoryRepo: new(mocks.CategoryRepository),
		cache:        new(cachemocks.Cache),
	}
	f.service = service.NewProductService(f.repo, f.categoryRepo, f.cache)

	return f
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	categoryID := uuid.New()
	category := &models.Category{ID: categoryID, TenantID: tenantID, Name: "Sauces", NotificationEnabled: true}

	t.Run("Success - Create Product", func(t *testing.T) {
		f := newProductFixture()
		req := &models.CreateProductRequest{
			CategoryID:   categoryID,
			Name:         "  <b>Tomato</b> Sauce ",
			Validity:     intRef(3),
			ValidityUnit: unitRef(expiry.Days),
		}

		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, categoryID).Return(category, nil).Once()
		f.repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Tomato Sauce" && p.TenantID == tenantID && p.Status == models.ProductStatusActive
		})).Return(nil).Once()

		product, err := f.service.CreateProduct(ctx, tenantID, req)

		require.NoError(t, err)
		assert.Equal(t, "Tomato Sauce", product.Name)
		assert.Equal(t, category, product.Category)
		assert.NotEqual(t, uuid.Nil, product.ID)
		f.repo.AssertExpectations(t)
	})

	t.Run("Failure - Unpaired Validity", func(t *testing.T) {
		f := newProductFixture()
		req := &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice", Validity: intRef(3)}

		_, err := f.service.CreateProduct(ctx, tenantID, req)

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		f.repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Setting Unit", func(t *testing.T) {
		f := newProductFixture()
		req := &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice", Setting: intRef(1), SettingUnit: unitRef("minutes")}

		_, err := f.service.CreateProduct(ctx, tenantID, req)

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Amount Above Bound", func(t *testing.T) {
		tests := []struct {
			name string
			req  *models.CreateProductRequest
		}{
			{name: "Validity", req: &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice", Validity: intRef(expiry.MaxAmount + 1), ValidityUnit: unitRef(expiry.Hours)}},
			{name: "Setting", req: &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice", Setting: intRef(3_000_000), SettingUnit: unitRef(expiry.Hours)}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				f := newProductFixture()

				_, err := f.service.CreateProduct(ctx, tenantID, tc.req)

				assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
				f.repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Failure - Category Of Another Tenant", func(t *testing.T) {
		f := newProductFixture()
		req := &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice"}

		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, categoryID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.CreateProduct(ctx, tenantID, req)

		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
		f.repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		f := newProductFixture()
		req := &models.CreateProductRequest{CategoryID: categoryID, Name: "Rice"}

		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, categoryID).Return(category, nil).Once()
		f.repo.On("CreateProduct", mock.Anything, mock.Anything).Return(errors.New("DB Connection Failed")).Once()

		product, err := f.service.CreateProduct(ctx, tenantID, req)

		assert.Nil(t, product)
		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
		assert.Contains(t, err.Error(), "Failed to create product")
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()
	key := cache.ProductKey(tenantID, productID)

	t.Run("Cache Hit Skips The Database", func(t *testing.T) {
		f := newProductFixture()

		f.cache.On("Get", mock.Anything, key, mock.AnythingOfType("*models.Product")).Return(true, nil).Run(func(args mock.Arguments) {
			p := args.Get(2).(*models.Product)
			p.ID = productID
			p.Name = "Cached"
		}).Once()

		product, err := f.service.GetProductByID(ctx, tenantID, productID)

		require.NoError(t, err)
		assert.Equal(t, "Cached", product.Name)
		f.repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache Miss Loads And Fills", func(t *testing.T) {
		f := newProductFixture()
		expected := &models.Product{ID: productID, TenantID: tenantID, Name: "Rice"}

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(expected, nil).Once()
		f.cache.On("Set", mock.Anything, key, expected, mock.Anything).Return(nil).Once()

		product, err := f.service.GetProductByID(ctx, tenantID, productID)

		require.NoError(t, err)
		assert.Equal(t, expected, product)
		f.cache.AssertExpectations(t)
	})

	t.Run("Cache Outage Falls Back To Database", func(t *testing.T) {
		f := newProductFixture()
		expected := &models.Product{ID: productID, TenantID: tenantID, Name: "Rice"}

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(expected, nil).Once()
		f.cache.On("Set", mock.Anything, key, expected, mock.Anything).Return(errors.New("redis down")).Once()

		product, err := f.service.GetProductByID(ctx, tenantID, productID)

		require.NoError(t, err)
		assert.Equal(t, expected, product)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		f := newProductFixture()

		f.cache.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(nil, repository.ErrNotFound).Once()

		product, err := f.service.GetProductByID(ctx, tenantID, productID)

		assert.Nil(t, product)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()
	key := cache.ProductKey(tenantID, productID)

	existing := func() *models.Product {
		return &models.Product{
			ID:           productID,
			TenantID:     tenantID,
			CategoryID:   uuid.New(),
			Name:         "Rice",
			Validity:     intRef(5),
			ValidityUnit: unitRef(expiry.Days),
			Status:       models.ProductStatusActive,
		}
	}

	t.Run("Success - Partial Update Invalidates Cache", func(t *testing.T) {
		f := newProductFixture()
		name := "Brown Rice"
		status := models.ProductStatusInactive

		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(existing(), nil).Once()
		f.repo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == name && p.Status == status && *p.Validity == 5
		})).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, []string{key}).Return(nil).Once()

		product, err := f.service.UpdateProduct(ctx, tenantID, productID, &models.UpdateProductRequest{Name: &name, Status: &status})

		require.NoError(t, err)
		assert.Equal(t, name, product.Name)
		f.cache.AssertExpectations(t)
	})

	t.Run("Success - Move To Another Category", func(t *testing.T) {
		f := newProductFixture()
		newCategory := &models.Category{ID: uuid.New(), TenantID: tenantID, Name: "Grains"}

		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(existing(), nil).Once()
		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, newCategory.ID).Return(newCategory, nil).Once()
		f.repo.On("UpdateProduct", mock.Anything, mock.Anything).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, []string{key}).Return(nil).Once()

		product, err := f.service.UpdateProduct(ctx, tenantID, productID, &models.UpdateProductRequest{CategoryID: &newCategory.ID})

		require.NoError(t, err)
		assert.Equal(t, newCategory.ID, product.CategoryID)
		assert.Equal(t, newCategory, product.Category)
	})

	t.Run("Failure - Invalid Unit", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(existing(), nil).Once()

		_, err := f.service.UpdateProduct(ctx, tenantID, productID, &models.UpdateProductRequest{ValidityUnit: unitRef("weeks")})

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		f.repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Validity Above Bound", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(existing(), nil).Once()

		_, err := f.service.UpdateProduct(ctx, tenantID, productID, &models.UpdateProductRequest{Validity: intRef(2147483647)})

		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		f.repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("GetProductByID", mock.Anything, tenantID, productID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.UpdateProduct(ctx, tenantID, productID, &models.UpdateProductRequest{})

		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("SoftDeleteProduct", mock.Anything, tenantID, productID).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, []string{cache.ProductKey(tenantID, productID)}).Return(nil).Once()

		assert.NoError(t, f.service.DeleteProduct(ctx, tenantID, productID))
		f.cache.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("SoftDeleteProduct", mock.Anything, tenantID, productID).Return(repository.ErrNotFound).Once()

		assertAppErrorCode(t, f.service.DeleteProduct(ctx, tenantID, productID), appErrors.ErrCodeNotFound)
		f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newProductFixture()
		expected := []*models.Product{{ID: uuid.New(), Name: "Rice"}, {ID: uuid.New(), Name: "Beans"}}

		f.repo.On("ListProducts", mock.Anything, tenantID, 1, 10).Return(expected, 2, nil).Once()

		products, total, err := f.service.ListProducts(ctx, tenantID, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, expected, products)
		assert.Equal(t, 2, total)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("ListProducts", mock.Anything, tenantID, 1, 10).Return(nil, 0, errors.New("DB Query Failed")).Once()

		_, _, err := f.service.ListProducts(ctx, tenantID, 1, 10)

		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}
