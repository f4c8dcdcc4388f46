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

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error
	ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error)
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, tenant_id, user_id, product_id, type, recipient, subject, content, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, notification.ID, notification.TenantID, notification.UserID, nullUUID(notification.ProductID),
		notification.Type, notification.Recipient, notification.Subject, notification.Content, notification.Status, notification.ErrorMessage).
		Scan(&notification.CreatedAt, &notification.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update the notification status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *notificationRepository) ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM notifications WHERE tenant_id = $1`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, tenant_id, user_id, product_id, type, recipient, subject, content, status, error_message, created_at, updated_at
		FROM notifications
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}

	defer rows.Close()

	notifications := []*models.Notification{}

	for rows.Next() {
		var n models.Notification
		var productID uuid.NullUUID

		err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &productID, &n.Type, &n.Recipient, &n.Subject, &n.Content,
			&n.Status, &n.ErrorMessage, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notifications: %w", err)
		}

		if productID.Valid {
			n.ProductID = &productID.UUID
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return notifications, total, nil
}
