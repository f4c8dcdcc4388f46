package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, tenantID, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*models.Product, int, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Int(1), args.Error(2)
}

type CategoryService struct {
	mock.Mock
}

func (m *CategoryService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, tenantID, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *CategoryService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, tenantID, id, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *CategoryService) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error) {
	args := m.Called(ctx, tenantID)
	categories, _ := args.Get(0).([]*models.Category)
	return categories, args.Error(1)
}
