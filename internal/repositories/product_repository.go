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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	SoftDeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error
	ListProducts(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Product, int, error)
	ListProductsWithValidity(ctx context.Context) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.tenant_id, p.category_id, p.name, p.validity, p.validity_unit,
		p.setting, p.setting_unit, p.status, p.created_at, p.updated_at,
		c.id, c.tenant_id, c.name, c.notification_enabled, c.created_at, c.updated_at`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, tenant_id, category_id, name, validity, validity_unit, setting, setting_unit, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.ID, product.TenantID, product.CategoryID, product.Name,
		nullInt(product.Validity), nullUnit(product.ValidityUnit), nullInt(product.Setting), nullUnit(product.SettingUnit), product.Status).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProductByID never returns soft-deleted products.
func (r *productRepository) GetProductByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.tenant_id = $2 AND p.deleted = FALSE`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, name = $2, validity = $3, validity_unit = $4,
			setting = $5, setting_unit = $6, status = $7, updated_at = NOW()
		WHERE id = $8 AND tenant_id = $9 AND deleted = FALSE
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name,
		nullInt(product.Validity), nullUnit(product.ValidityUnit), nullInt(product.Setting), nullUnit(product.SettingUnit),
		product.Status, product.ID, product.TenantID).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// SoftDeleteProduct keeps the row so print logs and alerts stay valid.
func (r *productRepository) SoftDeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND deleted = FALSE`

	result, err := r.DB.ExecContext(dbCtx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Product, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE tenant_id = $1 AND deleted = FALSE`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.tenant_id = $1 AND p.deleted = FALSE
		ORDER BY p.name ASC, p.id ASC
		LIMIT $2 OFFSET $3`

	products, err := r.queryProducts(dbCtx, query, tenantID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListProductsWithValidity scans every tenant. It feeds the expiry sweep,
// which has no request tenant.
func (r *productRepository) ListProductsWithValidity(ctx context.Context) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.deleted = FALSE AND p.status = 'active'
			AND p.validity IS NOT NULL AND p.validity_unit IS NOT NULL
		ORDER BY p.tenant_id, p.created_at`

	return r.queryProducts(dbCtx, query)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return products, nil
}

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	c := &models.Category{}

	var validity, setting sql.NullInt64
	var validityUnit, settingUnit sql.NullString

	err := row.Scan(&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &validity, &validityUnit,
		&setting, &settingUnit, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.TenantID, &c.Name, &c.NotificationEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Validity = intPtr(validity)
	p.ValidityUnit = unitPtr(validityUnit)
	p.Setting = intPtr(setting)
	p.SettingUnit = unitPtr(settingUnit)
	p.Category = c

	return p, nil
}
