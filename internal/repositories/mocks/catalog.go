package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, tenantID, id)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error) {
	args := m.Called(ctx, tenantID)
	categories, _ := args.Get(0).([]*models.Category)
	return categories, args.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) SoftDeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, tenantID, page, size)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Int(1), args.Error(2)
}

func (m *ProductRepository) ListProductsWithValidity(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Error(1)
}
