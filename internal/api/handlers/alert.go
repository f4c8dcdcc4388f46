package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/models"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/utils"
	"github.com/savedate/save-date/internal/utils/response"
)

type AlertHandler struct {
	alertService service.AlertService
	validator    *validator.Validate
}

func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService, validator: validator.New()}
}

// Print godoc
//
//	@Summary		Print labels
//	@Description	Record a label print. Opens a pending alert when the product's category has notifications enabled.
//	@Tags			Alerts
//	@Accept			json
//	@Produce		json
//	@Param			print	body		models.PrintRequest								true	"Print"
//	@Success		201		{object}	response.APIResponse{data=models.PrintResult}	"Print recorded"
//	@Failure		400		{object}	response.APIResponse							"Invalid input"
//	@Failure		404		{object}	response.APIResponse							"Product not found"
//	@Security		BearerAuth
//	@Router			/prints [post]
func (h *AlertHandler) Print() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized print attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PrintRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid print input")
			return
		}

		logger = logger.With(slog.String("productID", req.ProductID.String()))

		result, err := h.alertService.Print(r.Context(), claims.TenantID, claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to record print", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Print recorded", slog.String("printLogID", result.PrintLog.ID.String()), slog.Bool("alert", result.Alert != nil))
		response.Success(w, http.StatusCreated, result)
	}
}

// ListPending godoc
//
//	@Summary		List pending alerts
//	@Description	Pending alerts ordered by expiry, optionally narrowed to a look-ahead window or a search term
//	@Tags			Alerts
//	@Produce		json
//	@Param			window	query		string												false	"Look-ahead window"	Enums(7days, 15days, month)
//	@Param			search	query		string												false	"Product name or expiry date (YYYY-MM-DD or DD/MM/YYYY)"
//	@Success		200		{object}	response.APIResponse{data=[]models.PendingAlert}	"Pending alerts"
//	@Failure		400		{object}	response.APIResponse								"Invalid filter"
//	@Security		BearerAuth
//	@Router			/alerts [get]
func (h *AlertHandler) ListPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		filter := &models.AlertFilter{
			Window: expiry.Window(r.URL.Query().Get("window")),
			Search: r.URL.Query().Get("search"),
		}
		if !utils.Validate(w, filter, h.validator) {
			return
		}

		alerts, err := h.alertService.ListPending(r.Context(), claims.TenantID, filter)
		if err != nil {
			logger.Error("Failed to list pending alerts", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, alerts)
	}
}

// Discard godoc
//
//	@Summary	Discard an alert
//	@Tags		Alerts
//	@Produce	json
//	@Param		id	path		string									true	"Alert ID"
//	@Success	200	{object}	response.APIResponse{data=models.Alert}	"Alert discarded"
//	@Failure	404	{object}	response.APIResponse					"Alert not found"
//	@Failure	409	{object}	response.APIResponse					"Alert is no longer pending"
//	@Security	BearerAuth
//	@Router		/alerts/{id}/discard [post]
func (h *AlertHandler) Discard() http.HandlerFunc {
	return h.transition("discard", h.alertService.Discard)
}

// Resolve godoc
//
//	@Summary	Resolve an alert
//	@Tags		Alerts
//	@Produce	json
//	@Param		id	path		string									true	"Alert ID"
//	@Success	200	{object}	response.APIResponse{data=models.Alert}	"Alert resolved"
//	@Failure	404	{object}	response.APIResponse					"Alert not found"
//	@Failure	409	{object}	response.APIResponse					"Alert is no longer pending"
//	@Security	BearerAuth
//	@Router		/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve() http.HandlerFunc {
	return h.transition("resolve", h.alertService.Resolve)
}

type alertTransition func(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error)

func (h *AlertHandler) transition(action string, apply alertTransition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("alertID", id.String()), slog.String("action", action))

		alert, err := apply(r.Context(), claims.TenantID, id)
		if err != nil {
			logger.Warn("Alert transition rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Alert transitioned", slog.String("status", string(alert.Status)))
		response.Success(w, http.StatusOK, alert)
	}
}

// Delete godoc
//
//	@Summary	Delete an alert
//	@Tags		Alerts
//	@Param		id	path	string	true	"Alert ID"
//	@Success	204	"Alert deleted"
//	@Failure	403	{object}	response.APIResponse	"Admin role required"
//	@Failure	404	{object}	response.APIResponse	"Alert not found"
//	@Security	BearerAuth
//	@Router		/alerts/{id} [delete]
func (h *AlertHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.PathUUID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.alertService.Delete(r.Context(), claims.TenantID, id); err != nil {
			logger.Error("Failed to delete alert", slog.String("alertID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Alert deleted", slog.String("alertID", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
