package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/cache"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/utils"
)

type ProductService interface {
	CreateProduct(ctx context.Context, tenantID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error
	ListProducts(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, productCache cache.Cache) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, cache: productCache}
}

func (s *productService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	product := &models.Product{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CategoryID:   req.CategoryID,
		Name:         name,
		Validity:     req.Validity,
		ValidityUnit: req.ValidityUnit,
		Setting:      req.Setting,
		SettingUnit:  req.SettingUnit,
		Status:       models.ProductStatusActive,
	}

	if err := validatePairs(product); err != nil {
		return nil, err
	}

	category, err := s.tenantCategory(ctx, tenantID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	product.Category = category

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID reads through the cache. A cache outage degrades to a
// database read instead of failing the request.
func (s *productService) GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.ProductKey(tenantID, id)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err := s.tenantCategory(ctx, tenantID, *req.CategoryID)
		if err != nil {
			return nil, err
		}

		product.CategoryID = category.ID
		product.Category = category
	}
	if req.Name != nil {
		name := utils.SanitizeText(*req.Name)
		if name == "" {
			return nil, errors.AddValidationError("name", "cannot be empty")
		}
		product.Name = name
	}
	if req.Validity != nil {
		product.Validity = req.Validity
	}
	if req.ValidityUnit != nil {
		product.ValidityUnit = req.ValidityUnit
	}
	if req.Setting != nil {
		product.Setting = req.Setting
	}
	if req.SettingUnit != nil {
		product.SettingUnit = req.SettingUnit
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := validatePairs(product); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, tenantID, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {

	if err := s.repo.SoftDeleteProduct(ctx, tenantID, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, tenantID, id)

	return nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) tenantCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, tenantID, categoryID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	return category, nil
}

func (s *productService) invalidate(ctx context.Context, tenantID, id uuid.UUID) {
	key := cache.ProductKey(tenantID, id)

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

// validatePairs enforces that an amount and its unit are set together,
// that units are hours or days, and that amounts stay within expiry.MaxAmount.
func validatePairs(product *models.Product) error {
	if (product.Validity == nil) != (product.ValidityUnit == nil) {
		return errors.ValidationError("validity and validity_unit must be set together")
	}

	if product.ValidityUnit != nil && !product.ValidityUnit.Valid() {
		return errors.AddValidationError("validity_unit", "must be hours or days")
	}

	if product.Validity != nil && (*product.Validity <= 0 || *product.Validity > expiry.MaxAmount) {
		return errors.AddValidationError("validity", fmt.Sprintf("must be between 1 and %d", expiry.MaxAmount))
	}

	if (product.Setting == nil) != (product.SettingUnit == nil) {
		return errors.ValidationError("setting and setting_unit must be set together")
	}

	if product.SettingUnit != nil && !product.SettingUnit.Valid() {
		return errors.AddValidationError("setting_unit", "must be hours or days")
	}

	if product.Setting != nil && (*product.Setting <= 0 || *product.Setting > expiry.MaxAmount) {
		return errors.AddValidationError("setting", fmt.Sprintf("must be between 1 and %d", expiry.MaxAmount))
	}

	return nil
}
