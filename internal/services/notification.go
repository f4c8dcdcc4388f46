package service

import (
	"context"
	stdErrors "errors"
	"html"
	"log/slog"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/metrics"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/pkg/sendgrid"
)

type NotificationService interface {
	Dispatch(ctx context.Context, tenantID uuid.UUID, recipients []models.Subscriber, msg *models.Message) models.DispatchResult
	ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error)
	Subscribe(ctx context.Context, tenantID, userID uuid.UUID, req *models.SubscribeRequest) (*models.NotificationSubscription, error)
	ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error)
	Unsubscribe(ctx context.Context, tenantID, userID, id uuid.UUID) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	subRepo      repository.SubscriptionRepository
	categoryRepo repository.CategoryRepository
	emailService sendgrid.EmailService
	clock        clock.Clock
}

func NewNotificationService(repo repository.NotificationRepository, subRepo repository.SubscriptionRepository, categoryRepo repository.CategoryRepository,
	emailService sendgrid.EmailService, clk clock.Clock) NotificationService {
	return &notificationService{
		repo:         repo,
		subRepo:      subRepo,
		categoryRepo: categoryRepo,
		emailService: emailService,
		clock:        clk,
	}
}

// Dispatch delivers msg to every recipient by email. Each attempt is
// recorded as a notification row. Failures are logged and counted, never
// returned, so one bad address cannot stop the others.
func (n *notificationService) Dispatch(ctx context.Context, tenantID uuid.UUID, recipients []models.Subscriber, msg *models.Message) models.DispatchResult {

	logger := middleware.LoggerFromContext(ctx)

	var result models.DispatchResult

	for _, recipient := range recipients {
		if err := n.deliver(ctx, tenantID, recipient, msg); err != nil {
			result.Failed++
			metrics.NotificationsTotal.WithLabelValues(string(models.NotificationTypeEmail), "failed").Inc()

			logger.Warn("Notification delivery failed",
				slog.String("userId", recipient.UserID.String()),
				slog.String("error", err.Error()))

			continue
		}

		result.Sent++
		metrics.NotificationsTotal.WithLabelValues(string(models.NotificationTypeEmail), "sent").Inc()
	}

	return result
}

func (n *notificationService) deliver(ctx context.Context, tenantID uuid.UUID, recipient models.Subscriber, msg *models.Message) error {

	now := n.clock.Now()

	notification := &models.Notification{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    recipient.UserID,
		ProductID: msg.ProductID,
		Type:      models.NotificationTypeEmail,
		Recipient: recipient.Email,
		Subject:   msg.Title,
		Content:   msg.Body,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return err
	}

	err := n.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:          recipient.Email,
		Subject:     msg.Title,
		Content:     msg.Body,
		HTMLContent: "<p>" + html.EscapeString(msg.Body) + "</p>",
	})
	if err != nil {
		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			return stdErrors.Join(err, updateErr)
		}

		return err
	}

	return n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, "")
}

func (n *notificationService) ListNotifications(ctx context.Context, tenantID uuid.UUID, page, size int) ([]*models.Notification, int, error) {

	notifications, total, err := n.repo.ListNotifications(ctx, tenantID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}

// Subscribe opts the user into expiry warnings, for one category or for
// the whole tenant when no category is given.
func (n *notificationService) Subscribe(ctx context.Context, tenantID, userID uuid.UUID, req *models.SubscribeRequest) (*models.NotificationSubscription, error) {

	if req.CategoryID != nil {
		if _, err := n.categoryRepo.GetCategoryByID(ctx, tenantID, *req.CategoryID); err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return nil, errors.NotFoundError("Category not found").WithError(err)
			}

			return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
		}
	}

	sub := &models.NotificationSubscription{
		ID:         uuid.New(),
		TenantID:   tenantID,
		UserID:     userID,
		CategoryID: req.CategoryID,
	}

	if err := n.subRepo.CreateSubscription(ctx, sub); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Subscription already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create subscription").WithError(err)
	}

	return sub, nil
}

func (n *notificationService) ListSubscriptions(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.NotificationSubscription, error) {

	subs, err := n.subRepo.ListSubscriptions(ctx, tenantID, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch subscriptions").WithError(err)
	}

	return subs, nil
}

func (n *notificationService) Unsubscribe(ctx context.Context, tenantID, userID, id uuid.UUID) error {

	if err := n.subRepo.DeleteSubscription(ctx, tenantID, userID, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Subscription not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete subscription").WithError(err)
	}

	return nil
}
