package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	service "github.com/savedate/save-date/internal/services"
	"github.com/savedate/save-date/internal/utils"
	"github.com/savedate/save-date/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// ListNotifications godoc
//
//	@Summary		List sent notifications
//	@Description	Delivery log of expiry warnings for the caller's tenant, newest first
//	@Tags			Notifications
//	@Produce		json
//	@Param			page	query		int													false	"Page number"	default(1)
//	@Param			size	query		int													false	"Page size"		default(10)
//	@Success		200		{object}	response.APIResponse{data=models.PaginatedResponse}	"Notifications"
//	@Security		BearerAuth
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized notification access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)
		logger = logger.With(slog.Int("page", page), slog.Int("pageSize", pageSize))

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), claims.TenantID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Notifications listed successfully", slog.Int("count", len(notifications)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// Subscribe godoc
//
//	@Summary		Subscribe to expiry warnings
//	@Description	Opt in to warnings for one category, or for the whole tenant when category_id is omitted
//	@Tags			Notifications
//	@Accept			json
//	@Produce		json
//	@Param			subscription	body		models.SubscribeRequest									true	"Subscription"
//	@Success		201				{object}	response.APIResponse{data=models.NotificationSubscription}	"Subscribed"
//	@Failure		404				{object}	response.APIResponse									"Category not found"
//	@Failure		409				{object}	response.APIResponse									"Already subscribed"
//	@Security		BearerAuth
//	@Router			/notifications/subscriptions [post]
func (h *NotificationHandler) Subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SubscribeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sub, err := h.notificationService.Subscribe(r.Context(), claims.TenantID, claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to subscribe", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Subscribed to expiry warnings", slog.String("subscriptionID", sub.ID.String()))
		response.Success(w, http.StatusCreated, sub)
	}
}

// ListSubscriptions godoc
//
//	@Summary	List my subscriptions
//	@Tags		Notifications
//	@Produce	json
//	@Success	200	{object}	response.APIResponse{data=[]models.NotificationSubscription}	"Subscriptions"
//	@Security	BearerAuth
//	@Router		/notifications/subscriptions [get]
func (h *NotificationHandler) ListSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		subs, err := h.notificationService.ListSubscriptions(r.Context(), claims.TenantID, claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, subs)
	}
}

// Unsubscribe godoc
//
//	@Summary	Remove a subscription
//	@Tags		Notifications
//	@Param		id	path	string	true	"Subscription ID"
//	@Success	204	"Unsubscribed"
//	@Failure	404	{object}	response.APIResponse	"Subscription not found"
//	@Security	BearerAuth
//	@Router		/notifications/subscriptions/{id} [delete]
func (h *NotificationHandler) Unsubscribe() http.HandlerFunc {
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

		if err := h.notificationService.Unsubscribe(r.Context(), claims.TenantID, claims.UserID, id); err != nil {
			logger.Warn("Failed to unsubscribe", slog.String("subscriptionID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
