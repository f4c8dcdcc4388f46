package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
//
//	@Summary		Dashboard summary
//	@Description	Print and alert counters for the tenant. Alert counts in the window cover [now-period, now+period].
//	@Tags			Dashboard
//	@Produce		json
//	@Param			period	query		string											false	"Window"						Enums(week, month, year)	default(week)
//	@Param			recent	query		int												false	"Number of recent prints"	default(10)
//	@Success		200		{object}	response.APIResponse{data=models.DashboardSummary}	"Summary"
//	@Failure		400		{object}	response.APIResponse							"Invalid period"
//	@Security		BearerAuth
//	@Router			/dashboard [get]
func (h *DashboardHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		period := models.DashboardPeriod(r.URL.Query().Get("period"))

		recent := 0
		if raw := r.URL.Query().Get("recent"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				response.Error(w, errors.BadRequestError("recent must be a non-negative integer"))
				return
			}
			recent = n
		}

		summary, err := h.dashboardService.Summary(r.Context(), claims.TenantID, period, recent)
		if err != nil {
			logger.Error("Failed to build dashboard", slog.String("period", string(period)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
