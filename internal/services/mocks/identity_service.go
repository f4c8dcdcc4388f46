package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *UserService) CreateUser(ctx context.Context, tenantID uuid.UUID, req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, tenantID, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserService) CreateTenant(ctx context.Context, name string, admin *models.CreateUserRequest) (*models.Tenant, *models.User, error) {
	args := m.Called(ctx, name, admin)
	tenant, _ := args.Get(0).(*models.Tenant)
	user, _ := args.Get(1).(*models.User)
	return tenant, user, args.Error(2)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Dispatch(ctx context.Context, tenantID uuid.UUID, recipients []models.Subscriber, msg *models.Message) models.DispatchResult {
	args := m.Called(ctx, tenantID, recipients, msg)
	result, _ := args.Get(0).(models.DispatchResult)
	return result
}

func (m *NotificationService) ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, tenantID, page, size)
	notifications, _ := args.Get(0).([]*models.Notification)
	return notifications, args.Int(1), args.Error(2)
}

func (m *NotificationService) Subscribe(ctx context.Context, tenantID, userID uuid.UUID, req *models.SubscribeRequest) (*models.NotificationSubscription, error) {
	args := m.Called(ctx, tenantID, userID, req)
	sub, _ := args.Get(0).(*models.NotificationSubscription)
	return sub, args.Error(1)
}

func (m *NotificationService) ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error) {
	args := m.Called(ctx, tenantID, userID)
	subs, _ := args.Get(0).([]*models.NotificationSubscription)
	return subs, args.Error(1)
}

func (m *NotificationService) Unsubscribe(ctx context.Context, tenantID, userID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID, id)
	return args.Error(0)
}
