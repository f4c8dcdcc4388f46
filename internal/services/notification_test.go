package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/clock"
	appErrors "github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/repositories/mocks"
	service "github.com/savedate/save-date/internal/services"
	sgmocks "github.com/savedate/save-date/pkg/sendgrid/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	repo         *mocks.NotificationRepository
	subRepo      *mocks.SubscriptionRepository
	categoryRepo *mocks.CategoryRepository
	email        *sgmocks.EmailService
	service      service.NotificationService
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		repo:         new(mocks.NotificationRepository),
		subRepo:      new(mocks.SubscriptionRepository),
		categoryRepo: new(mocks.CategoryRepository),
		email:        new(sgmocks.EmailService),
	}
	f.service = service.NewNotificationService(f.repo, f.subRepo, f.categoryRepo, f.email, clock.NewFake(printTime))

	return f
}

func TestNotificationService_Dispatch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	msg := &models.Message{Title: "Expiry warning: Rice", Body: "Rice expires in 2 days.", ProductID: &productID}

	ana := models.Subscriber{UserID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	bo := models.Subscriber{UserID: uuid.New(), Name: "Bo", Email: "bo@example.com"}

	t.Run("Success - Every Recipient Gets A Row And An Email", func(t *testing.T) {
		f := newNotificationFixture()

		f.repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.TenantID == tenantID && n.Status == models.StatusPending && n.Type == models.NotificationTypeEmail &&
				n.Subject == msg.Title && n.Content == msg.Body && n.ProductID != nil && *n.ProductID == productID
		})).Return(nil).Twice()

		f.email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.Subject == msg.Title && r.Content == msg.Body && r.HTMLContent == "<p>Rice expires in 2 days.</p>"
		})).Return(nil).Twice()

		f.repo.On("UpdateNotificationStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.StatusSent, "").Return(nil).Twice()

		result := f.service.Dispatch(ctx, tenantID, []models.Subscriber{ana, bo}, msg)

		assert.Equal(t, models.DispatchResult{Sent: 2}, result)
		f.repo.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("Failure Of One Recipient Does Not Stop The Others", func(t *testing.T) {
		f := newNotificationFixture()

		f.repo.On("CreateNotification", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Twice()

		f.email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.To == ana.Email
		})).Return(errors.New("failed to send email, status code: 400")).Once()
		f.email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.To == bo.Email
		})).Return(nil).Once()

		f.repo.On("UpdateNotificationStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.StatusFailed, "failed to send email, status code: 400").Return(nil).Once()
		f.repo.On("UpdateNotificationStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.StatusSent, "").Return(nil).Once()

		result := f.service.Dispatch(ctx, tenantID, []models.Subscriber{ana, bo}, msg)

		assert.Equal(t, models.DispatchResult{Sent: 1, Failed: 1}, result)
		f.repo.AssertExpectations(t)
	})

	t.Run("Record Failure Skips The Email", func(t *testing.T) {
		f := newNotificationFixture()

		f.repo.On("CreateNotification", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(errors.New("db down")).Once()

		result := f.service.Dispatch(ctx, tenantID, []models.Subscriber{ana}, msg)

		assert.Equal(t, models.DispatchResult{Failed: 1}, result)
		f.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("No Recipients", func(t *testing.T) {
		f := newNotificationFixture()

		assert.Equal(t, models.DispatchResult{}, f.service.Dispatch(ctx, tenantID, nil, msg))
	})
}

func TestNotificationService_ListNotifications(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newNotificationFixture()
		expected := []*models.Notification{{ID: uuid.New(), TenantID: tenantID}}

		f.repo.On("ListNotifications", mock.Anything, tenantID, 2, 5).Return(expected, 6, nil).Once()

		notifications, total, err := f.service.ListNotifications(ctx, tenantID, 2, 5)

		require.NoError(t, err)
		assert.Equal(t, expected, notifications)
		assert.Equal(t, 6, total)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		f := newNotificationFixture()
		f.repo.On("ListNotifications", mock.Anything, tenantID, 1, 10).Return(nil, 0, errors.New("timeout")).Once()

		_, _, err := f.service.ListNotifications(ctx, tenantID, 1, 10)

		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestNotificationService_Subscriptions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("Success - Tenant Wide", func(t *testing.T) {
		f := newNotificationFixture()

		f.subRepo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s *models.NotificationSubscription) bool {
			return s.TenantID == tenantID && s.UserID == userID && s.CategoryID == nil && s.ID != uuid.Nil
		})).Return(nil).Once()

		sub, err := f.service.Subscribe(ctx, tenantID, userID, &models.SubscribeRequest{})

		require.NoError(t, err)
		assert.Nil(t, sub.CategoryID)
		f.categoryRepo.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Single Category", func(t *testing.T) {
		f := newNotificationFixture()

		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, categoryID).Return(&models.Category{ID: categoryID}, nil).Once()
		f.subRepo.On("CreateSubscription", mock.Anything, mock.AnythingOfType("*models.NotificationSubscription")).Return(nil).Once()

		sub, err := f.service.Subscribe(ctx, tenantID, userID, &models.SubscribeRequest{CategoryID: &categoryID})

		require.NoError(t, err)
		require.NotNil(t, sub.CategoryID)
		assert.Equal(t, categoryID, *sub.CategoryID)
	})

	t.Run("Failure - Foreign Category", func(t *testing.T) {
		f := newNotificationFixture()

		f.categoryRepo.On("GetCategoryByID", mock.Anything, tenantID, categoryID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.Subscribe(ctx, tenantID, userID, &models.SubscribeRequest{CategoryID: &categoryID})

		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Duplicate", func(t *testing.T) {
		f := newNotificationFixture()

		f.subRepo.On("CreateSubscription", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := f.service.Subscribe(ctx, tenantID, userID, &models.SubscribeRequest{})

		assertAppErrorCode(t, err, appErrors.ErrCodeDuplicateEntry)
	})

	t.Run("List", func(t *testing.T) {
		f := newNotificationFixture()
		expected := []*models.NotificationSubscription{{ID: uuid.New(), TenantID: tenantID, UserID: userID}}

		f.subRepo.On("ListSubscriptions", mock.Anything, tenantID, userID).Return(expected, nil).Once()

		subs, err := f.service.ListSubscriptions(ctx, tenantID, userID)

		require.NoError(t, err)
		assert.Equal(t, expected, subs)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		f := newNotificationFixture()
		subID := uuid.New()

		f.subRepo.On("DeleteSubscription", mock.Anything, tenantID, userID, subID).Return(nil).Once()

		assert.NoError(t, f.service.Unsubscribe(ctx, tenantID, userID, subID))
	})

	t.Run("Unsubscribe - Not Found", func(t *testing.T) {
		f := newNotificationFixture()
		subID := uuid.New()

		f.subRepo.On("DeleteSubscription", mock.Anything, tenantID, userID, subID).Return(repository.ErrNotFound).Once()

		assertAppErrorCode(t, f.service.Unsubscribe(ctx, tenantID, userID, subID), appErrors.ErrCodeNotFound)
	})
}
