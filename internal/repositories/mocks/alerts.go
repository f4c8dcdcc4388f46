package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type PrintRepository struct {
	mock.Mock
}

func (m *PrintRepository) RecordPrint(ctx context.Context, log *models.PrintLog, alert *models.Alert) error {
	args := m.Called(ctx, log, alert)
	return args.Error(0)
}

type AlertRepository struct {
	mock.Mock
}

func (m *AlertRepository) GetAlertByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {
	args := m.Called(ctx, tenantID, id)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (m *AlertRepository) TransitionPendingAlert(ctx context.Context, tenantID, id uuid.UUID, to models.AlertStatus, at time.Time) error {
	args := m.Called(ctx, tenantID, id, to, at)
	return args.Error(0)
}

func (m *AlertRepository) DeleteAlert(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *AlertRepository) ListPendingAlerts(ctx context.Context, tenantID uuid.UUID) ([]*models.PendingAlert, error) {
	args := m.Called(ctx, tenantID)
	alerts, _ := args.Get(0).([]*models.PendingAlert)
	return alerts, args.Error(1)
}

type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) CountPrints(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountProducts(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountAlertsByStatus(ctx context.Context, tenantID uuid.UUID) (map[models.AlertStatus]int, error) {
	args := m.Called(ctx, tenantID)
	counts, _ := args.Get(0).(map[models.AlertStatus]int)
	return counts, args.Error(1)
}

func (m *DashboardRepository) CountAlertsByStatusBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[models.AlertStatus]int, error) {
	args := m.Called(ctx, tenantID, from, to)
	counts, _ := args.Get(0).(map[models.AlertStatus]int)
	return counts, args.Error(1)
}

func (m *DashboardRepository) CountProductsByCategory(ctx context.Context, tenantID uuid.UUID) ([]models.CategoryCount, error) {
	args := m.Called(ctx, tenantID)
	counts, _ := args.Get(0).([]models.CategoryCount)
	return counts, args.Error(1)
}

func (m *DashboardRepository) ListRecentPrints(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.RecentPrint, error) {
	args := m.Called(ctx, tenantID, limit)
	prints, _ := args.Get(0).([]models.RecentPrint)
	return prints, args.Error(1)
}
