package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/handlers"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/services/mocks"
	"github.com/savedate/save-date/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardSummary(t *testing.T) {
	claims := testutils.NewClaims(uuid.New(), uuid.New(), models.RoleMember)

	t.Run("Success", func(t *testing.T) {
		mockDashboardService := new(mocks.DashboardService)
		dashboardHandler := handlers.NewDashboardHandler(mockDashboardService)

		summary := &models.DashboardSummary{
			Period:         models.PeriodMonth,
			TotalPrints:    12,
			AlertsByStatus: map[models.AlertStatus]int{models.AlertStatusPending: 4},
		}
		mockDashboardService.On("Summary", mock.Anything, claims.TenantID, models.PeriodMonth, 5).Return(summary, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard?period=month&recent=5", nil, claims, nil)
		rr := httptest.NewRecorder()

		dashboardHandler.Summary().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.DashboardSummary
		testutils.DecodeData(t, rr, &got)
		assert.Equal(t, 12, got.TotalPrints)
		assert.Equal(t, 4, got.AlertsByStatus[models.AlertStatusPending])
	})

	t.Run("Defaults Are Left To The Service", func(t *testing.T) {
		mockDashboardService := new(mocks.DashboardService)
		dashboardHandler := handlers.NewDashboardHandler(mockDashboardService)

		mockDashboardService.On("Summary", mock.Anything, claims.TenantID, models.DashboardPeriod(""), 0).
			Return(&models.DashboardSummary{Period: models.PeriodWeek}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard", nil, claims, nil)
		rr := httptest.NewRecorder()

		dashboardHandler.Summary().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockDashboardService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Recent", func(t *testing.T) {
		mockDashboardService := new(mocks.DashboardService)
		dashboardHandler := handlers.NewDashboardHandler(mockDashboardService)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard?recent=lots", nil, claims, nil)
		rr := httptest.NewRecorder()

		dashboardHandler.Summary().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockDashboardService.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Period", func(t *testing.T) {
		mockDashboardService := new(mocks.DashboardService)
		dashboardHandler := handlers.NewDashboardHandler(mockDashboardService)

		mockDashboardService.On("Summary", mock.Anything, claims.TenantID, models.DashboardPeriod("decade"), 0).
			Return(nil, appErrors.AddValidationError("period", "must be one of week, month, year")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/dashboard?period=decade", nil, claims, nil)
		rr := httptest.NewRecorder()

		dashboardHandler.Summary().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
