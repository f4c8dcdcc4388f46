package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils"
)

type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *models.NotificationSubscription) error
	ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error)
	DeleteSubscription(ctx context.Context, tenantID, userID, id uuid.UUID) error
	ListSubscribers(ctx context.Context, tenantID, categoryID uuid.UUID) ([]models.Subscriber, error)
}

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{DB: db}
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, sub *models.NotificationSubscription) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notification_subscriptions (id, tenant_id, user_id, category_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`

	err := r.DB.QueryRowContext(dbCtx, query, sub.ID, sub.TenantID, sub.UserID, nullUUID(sub.CategoryID)).Scan(&sub.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, tenant_id, user_id, category_id, created_at
		FROM notification_subscriptions
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	defer rows.Close()

	subs := []*models.NotificationSubscription{}

	for rows.Next() {
		sub := &models.NotificationSubscription{}

		var categoryID uuid.NullUUID

		if err := rows.Scan(&sub.ID, &sub.TenantID, &sub.UserID, &categoryID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}

		if categoryID.Valid {
			sub.CategoryID = &categoryID.UUID
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return subs, nil
}

func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, tenantID, userID, id uuid.UUID) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM notification_subscriptions WHERE id = $1 AND tenant_id = $2 AND user_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, id, tenantID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
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

// ListSubscribers resolves the users to warn about a product of categoryID:
// tenant-wide subscribers plus subscribers of that category, deduplicated.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, tenantID, categoryID uuid.UUID) ([]models.Subscriber, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT DISTINCT u.id, u.name, u.email
		FROM notification_subscriptions s
		JOIN users u ON u.id = s.user_id AND u.tenant_id = s.tenant_id
		WHERE s.tenant_id = $1 AND (s.category_id IS NULL OR s.category_id = $2)
		ORDER BY u.email`

	rows, err := r.DB.QueryContext(dbCtx, query, tenantID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}

	defer rows.Close()

	subscribers := []models.Subscriber{}

	for rows.Next() {
		var s models.Subscriber

		if err := rows.Scan(&s.UserID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}

		subscribers = append(subscribers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return subscribers, nil
}
