package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils"
)

type PrintRepository interface {
	RecordPrint(ctx context.Context, log *models.PrintLog, alert *models.Alert) error
}

type printRepository struct {
	DB *sql.DB
}

func NewPrintRepo(db *sql.DB) PrintRepository {
	return &printRepository{DB: db}
}

// RecordPrint stores the print log and, when alert is non-nil, its alert in
// one transaction. Either both rows exist afterwards or neither does.
func (r *printRepository) RecordPrint(ctx context.Context, log *models.PrintLog, alert *models.Alert) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	logQuery := `
		INSERT INTO print_logs (id, tenant_id, product_id, user_id, quantity, printed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(dbCtx, logQuery, log.ID, log.TenantID, log.ProductID, log.UserID, log.Quantity, log.PrintedAt); err != nil {
		return fmt.Errorf("failed to insert print log: %w", err)
	}

	if alert != nil {
		alertQuery := `
			INSERT INTO alerts (id, tenant_id, product_id, print_log_id, alert_date, status, quantity, lot_number, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		_, err := tx.ExecContext(dbCtx, alertQuery, alert.ID, alert.TenantID, alert.ProductID, alert.PrintLogID,
			alert.AlertDate, alert.Status, alert.Quantity, alert.LotNumber, alert.CreatedAt, alert.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit print: %w", err)
	}

	return nil
}
