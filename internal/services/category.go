package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/cache"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/utils"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, tenantID uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo repository.CategoryRepository, productCache cache.Cache) CategoryService {
	return &categoryService{repo: repo, cache: productCache}
}

func (s *categoryService) CreateCategory(ctx context.Context, tenantID uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, errors.AddValidationError("name", "is required")
	}

	category := &models.Category{
		ID:                  uuid.New(),
		TenantID:            tenantID,
		Name:                name,
		NotificationEnabled: req.NotificationEnabled,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

// UpdateCategory only affects alerts created by later prints; existing
// alerts keep their status. Cached products embed their category, so the
// tenant's product entries are dropped.
func (s *categoryService) UpdateCategory(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		name := utils.SanitizeText(*req.Name)
		if name == "" {
			return nil, errors.AddValidationError("name", "cannot be empty")
		}
		category.Name = name
	}
	if req.NotificationEnabled != nil {
		category.NotificationEnabled = *req.NotificationEnabled
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	prefix := cache.ProductTenantPrefix(tenantID)
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed",
			slog.String("prefix", prefix), slog.String("error", err.Error()))
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error) {

	categories, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}
