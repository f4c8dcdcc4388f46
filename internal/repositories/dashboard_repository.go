package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils"
)

type DashboardRepository interface {
	CountPrints(ctx context.Context, tenantID uuid.UUID) (int, error)
	CountProducts(ctx context.Context, tenantID uuid.UUID) (int, error)
	CountAlertsByStatus(ctx context.Context, tenantID uuid.UUID) (map[models.AlertStatus]int, error)
	CountAlertsByStatusBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[models.AlertStatus]int, error)
	CountProductsByCategory(ctx context.Context, tenantID uuid.UUID) ([]models.CategoryCount, error)
	ListRecentPrints(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.RecentPrint, error)
}

type dashboardRepository struct {
	DB *sql.DB
}

func NewDashboardRepo(db *sql.DB) DashboardRepository {
	return &dashboardRepository{DB: db}
}

func (r *dashboardRepository) CountPrints(ctx context.Context, tenantID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM print_logs WHERE tenant_id = $1`, tenantID)
}

func (r *dashboardRepository) CountProducts(ctx context.Context, tenantID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE tenant_id = $1 AND deleted = FALSE`, tenantID)
}

func (r *dashboardRepository) CountAlertsByStatus(ctx context.Context, tenantID uuid.UUID) (map[models.AlertStatus]int, error) {

	query := `
		SELECT status, COUNT(*)
		FROM alerts
		WHERE tenant_id = $1
		GROUP BY status`

	return r.countByStatus(ctx, query, tenantID)
}

// CountAlertsByStatusBetween counts alerts whose alert date is in [from, to].
func (r *dashboardRepository) CountAlertsByStatusBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[models.AlertStatus]int, error) {

	query := `
		SELECT status, COUNT(*)
		FROM alerts
		WHERE tenant_id = $1 AND alert_date BETWEEN $2 AND $3
		GROUP BY status`

	return r.countByStatus(ctx, query, tenantID, from, to)
}

func (r *dashboardRepository) CountProductsByCategory(ctx context.Context, tenantID uuid.UUID) ([]models.CategoryCount, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.name, COUNT(p.id)
		FROM categories c
		JOIN products p ON p.category_id = c.id AND p.deleted = FALSE
		WHERE c.tenant_id = $1
		GROUP BY c.name
		ORDER BY COUNT(p.id) DESC, c.name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}

	defer rows.Close()

	counts := []models.CategoryCount{}

	for rows.Next() {
		var c models.CategoryCount

		if err := rows.Scan(&c.CategoryName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}

		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return counts, nil
}

func (r *dashboardRepository) ListRecentPrints(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.RecentPrint, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT pl.id, pl.product_id, p.name, pl.quantity, pl.printed_at
		FROM print_logs pl
		JOIN products p ON p.id = pl.product_id
		WHERE pl.tenant_id = $1
		ORDER BY pl.printed_at DESC
		LIMIT $2`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent prints: %w", err)
	}

	defer rows.Close()

	prints := []models.RecentPrint{}

	for rows.Next() {
		var p models.RecentPrint

		if err := rows.Scan(&p.ID, &p.ProductID, &p.ProductName, &p.Quantity, &p.PrintedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent print: %w", err)
		}

		prints = append(prints, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return prints, nil
}

func (r *dashboardRepository) count(ctx context.Context, query string, args ...any) (int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}

	return total, nil
}

// countByStatus always returns every status key, zero when absent.
func (r *dashboardRepository) countByStatus(ctx context.Context, query string, args ...any) (map[models.AlertStatus]int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	defer rows.Close()

	counts := map[models.AlertStatus]int{
		models.AlertStatusPending:   0,
		models.AlertStatusDiscarded: 0,
		models.AlertStatusResolved:  0,
	}

	for rows.Next() {
		var status models.AlertStatus
		var n int

		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan alert count: %w", err)
		}

		counts[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return counts, nil
}
