package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
)

const (
	DefaultRecentPrints = 10
	MaxRecentPrints     = 50
)

type DashboardService interface {
	Summary(ctx context.Context, tenantID uuid.UUID, period models.DashboardPeriod, recent int) (*models.DashboardSummary, error)
}

type dashboardService struct {
	repo  repository.DashboardRepository
	clock clock.Clock
}

func NewDashboardService(repo repository.DashboardRepository, clk clock.Clock) DashboardService {
	return &dashboardService{repo: repo, clock: clk}
}

// Summary is recomputed on every call. An empty period means week and a
// recent count outside 1..MaxRecentPrints falls back to the default or cap.
func (s *dashboardService) Summary(ctx context.Context, tenantID uuid.UUID, period models.DashboardPeriod, recent int) (*models.DashboardSummary, error) {

	if period == "" {
		period = models.PeriodWeek
	}

	if !period.Valid() {
		return nil, errors.AddValidationError("period", "must be one of week, month, year")
	}

	switch {
	case recent <= 0:
		recent = DefaultRecentPrints
	case recent > MaxRecentPrints:
		recent = MaxRecentPrints
	}

	from, to := period.Bounds(s.clock.Now())

	summary := &models.DashboardSummary{
		Period:      period,
		WindowStart: from,
		WindowEnd:   to,
	}

	var err error

	if summary.TotalPrints, err = s.repo.CountPrints(ctx, tenantID); err != nil {
		return nil, errors.DatabaseError("Failed to count prints").WithError(err)
	}

	if summary.TotalProducts, err = s.repo.CountProducts(ctx, tenantID); err != nil {
		return nil, errors.DatabaseError("Failed to count products").WithError(err)
	}

	if summary.AlertsInWindow, err = s.repo.CountAlertsByStatusBetween(ctx, tenantID, from, to); err != nil {
		return nil, errors.DatabaseError("Failed to count alerts").WithError(err)
	}

	if summary.AlertsByStatus, err = s.repo.CountAlertsByStatus(ctx, tenantID); err != nil {
		return nil, errors.DatabaseError("Failed to count alerts").WithError(err)
	}

	if summary.ProductsByCategory, err = s.repo.CountProductsByCategory(ctx, tenantID); err != nil {
		return nil, errors.DatabaseError("Failed to count products by category").WithError(err)
	}

	if summary.RecentPrints, err = s.repo.ListRecentPrints(ctx, tenantID, recent); err != nil {
		return nil, errors.DatabaseError("Failed to fetch recent prints").WithError(err)
	}

	return summary, nil
}
