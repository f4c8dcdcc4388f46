package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	service "github.com/savedate/save-date/internal/services"
	"github.com/stretchr/testify/mock"
)

type AlertService struct {
	mock.Mock
}

func (m *AlertService) Print(ctx context.Context, tenantID, userID uuid.UUID, req *models.PrintRequest) (*models.PrintResult, error) {
	args := m.Called(ctx, tenantID, userID, req)
	result, _ := args.Get(0).(*models.PrintResult)
	return result, args.Error(1)
}

func (m *AlertService) Discard(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {
	args := m.Called(ctx, tenantID, id)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (m *AlertService) Resolve(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {
	args := m.Called(ctx, tenantID, id)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (m *AlertService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *AlertService) ListPending(ctx context.Context, tenantID uuid.UUID, filter *models.AlertFilter) ([]*models.PendingAlert, error) {
	args := m.Called(ctx, tenantID, filter)
	alerts, _ := args.Get(0).([]*models.PendingAlert)
	return alerts, args.Error(1)
}

type SweepService struct {
	mock.Mock
}

func (m *SweepService) Run(ctx context.Context) (service.SweepReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(service.SweepReport)
	return report, args.Error(1)
}

func (m *SweepService) LastCompleted() time.Time {
	args := m.Called()
	at, _ := args.Get(0).(time.Time)
	return at
}

func (m *SweepService) LastObserved() time.Time {
	args := m.Called()
	at, _ := args.Get(0).(time.Time)
	return at
}

type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) Summary(ctx context.Context, tenantID uuid.UUID, period models.DashboardPeriod, recent int) (*models.DashboardSummary, error) {
	args := m.Called(ctx, tenantID, period, recent)
	summary, _ := args.Get(0).(*models.DashboardSummary)
	return summary, args.Error(1)
}
