package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils"
)

type AlertRepository interface {
	GetAlertByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error)
	TransitionPendingAlert(ctx context.Context, tenantID, id uuid.UUID, to models.AlertStatus, at time.Time) error
	DeleteAlert(ctx context.Context, tenantID, id uuid.UUID) error
	ListPendingAlerts(ctx context.Context, tenantID uuid.UUID) ([]*models.PendingAlert, error)
}

type alertRepository struct {
	DB *sql.DB
}

func NewAlertRepo(db *sql.DB) AlertRepository {
	return &alertRepository{DB: db}
}

func (r *alertRepository) GetAlertByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, tenant_id, product_id, print_log_id, alert_date, status, quantity, lot_number, created_at, updated_at
		FROM alerts
		WHERE id = $1 AND tenant_id = $2`

	a := &models.Alert{}

	err := r.DB.QueryRowContext(dbCtx, query, id, tenantID).Scan(&a.ID, &a.TenantID, &a.ProductID, &a.PrintLogID,
		&a.AlertDate, &a.Status, &a.Quantity, &a.LotNumber, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return a, nil
}

// TransitionPendingAlert moves a pending alert to status to. It returns
// ErrNotFound when no pending alert matched, including when another request
// already moved it.
func (r *alertRepository) TransitionPendingAlert(ctx context.Context, tenantID, id uuid.UUID, to models.AlertStatus, at time.Time) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE alerts SET status = $1, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND status = 'pending'`

	result, err := r.DB.ExecContext(dbCtx, query, to, at, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
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

func (r *alertRepository) DeleteAlert(ctx context.Context, tenantID, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM alerts WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
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

// ListPendingAlerts returns pending alerts ordered by alert date, soonest first.
func (r *alertRepository) ListPendingAlerts(ctx context.Context, tenantID uuid.UUID) ([]*models.PendingAlert, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT a.id, a.tenant_id, a.product_id, a.print_log_id, a.alert_date, a.status, a.quantity, a.lot_number,
			a.created_at, a.updated_at, p.name
		FROM alerts a
		JOIN products p ON p.id = a.product_id
		WHERE a.tenant_id = $1 AND a.status = 'pending'
		ORDER BY a.alert_date ASC, a.id ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending alerts: %w", err)
	}

	defer rows.Close()

	alerts := []*models.PendingAlert{}

	for rows.Next() {
		a := &models.PendingAlert{}

		err := rows.Scan(&a.ID, &a.TenantID, &a.ProductID, &a.PrintLogID, &a.AlertDate, &a.Status, &a.Quantity, &a.LotNumber,
			&a.CreatedAt, &a.UpdatedAt, &a.ProductName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending alert: %w", err)
		}

		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return alerts, nil
}
