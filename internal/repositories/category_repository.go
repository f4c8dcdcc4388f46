package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, tenant_id, name, notification_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.ID, category.TenantID, category.Name, category.NotificationEnabled).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, tenant_id, name, notification_enabled, created_at, updated_at
		FROM categories
		WHERE id = $1 AND tenant_id = $2`

	category, err := scanCategory(r.DB.QueryRowContext(dbCtx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, notification_enabled = $2, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.NotificationEnabled, category.ID, category.TenantID).Scan(&category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, tenant_id, name, notification_enabled, created_at, updated_at
		FROM categories
		WHERE tenant_id = $1
		ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	defer rows.Close()

	categories := []*models.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return categories, nil
}

func scanCategory(row scanner) (*models.Category, error) {
	c := &models.Category{}

	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.NotificationEnabled, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return c, nil
}
