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

type TenantRepository interface {
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type tenantRepository struct {
	DB *sql.DB
}

func NewTenantRepo(db *sql.DB) TenantRepository {
	return &tenantRepository{DB: db}
}

func (r *tenantRepository) CreateTenant(ctx context.Context, tenant *models.Tenant) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO tenants (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, tenant.ID, tenant.Name, tenant.Status).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

func (r *tenantRepository) GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, status, created_at, updated_at FROM tenants WHERE id = $1`

	tenant := &models.Tenant{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&tenant.ID, &tenant.Name, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}
