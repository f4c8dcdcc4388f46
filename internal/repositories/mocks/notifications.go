package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	args := m.Called(ctx, id, status, errorMsg)
	return args.Error(0)
}

func (m *NotificationRepository) ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, tenantID, page, size)
	notifications, _ := args.Get(0).([]*models.Notification)
	return notifications, args.Int(1), args.Error(2)
}

type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.NotificationSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *SubscriptionRepository) ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error) {
	args := m.Called(ctx, tenantID, userID)
	subs, _ := args.Get(0).([]*models.NotificationSubscription)
	return subs, args.Error(1)
}

func (m *SubscriptionRepository) DeleteSubscription(ctx context.Context, tenantID, userID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID, id)
	return args.Error(0)
}

func (m *SubscriptionRepository) ListSubscribers(ctx context.Context, tenantID, categoryID uuid.UUID) ([]models.Subscriber, error) {
	args := m.Called(ctx, tenantID, categoryID)
	subscribers, _ := args.Get(0).([]models.Subscriber)
	return subscribers, args.Error(1)
}

// LeaseRepository also covers the sweep overlap guard.
type LeaseRepository struct {
	mock.Mock
}

func (m *LeaseRepository) Acquire(ctx context.Context, name, token string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, token, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *LeaseRepository) Release(ctx context.Context, name, token string) error {
	args := m.Called(ctx, name, token)
	return args.Error(0)
}
