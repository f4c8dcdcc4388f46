package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *TenantRepository) GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
