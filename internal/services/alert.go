package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/metrics"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
	"github.com/savedate/save-date/internal/utils"
)

type AlertService interface {
	Print(ctx context.Context, tenantID, userID uuid.UUID, req *models.PrintRequest) (*models.PrintResult, error)
	Discard(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error)
	Resolve(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListPending(ctx context.Context, tenantID uuid.UUID, filter *models.AlertFilter) ([]*models.PendingAlert, error)
}

type alertService struct {
	productRepo repository.ProductRepository
	printRepo   repository.PrintRepository
	alertRepo   repository.AlertRepository
	clock       clock.Clock
}

func NewAlertService(productRepo repository.ProductRepository, printRepo repository.PrintRepository, alertRepo repository.AlertRepository, clk clock.Clock) AlertService {
	return &alertService{productRepo: productRepo, printRepo: printRepo, alertRepo: alertRepo, clock: clk}
}

// Print records a label print. When the product's category has
// notifications enabled the print also opens a pending alert expiring
// validity units from now. Both rows are written together or not at all.
func (s *alertService) Print(ctx context.Context, tenantID, userID uuid.UUID, req *models.PrintRequest) (*models.PrintResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	lotNumber := utils.SanitizeText(req.LotNumber)

	switch {
	case req.ProductID == uuid.Nil:
		return nil, errors.AddValidationError("product_id", "is required")
	case req.Quantity <= 0:
		return nil, errors.AddValidationError("quantity", "must be greater than zero")
	case lotNumber == "":
		return nil, errors.AddValidationError("lot_number", "is required")
	}

	product, err := s.productRepo.GetProductByID(ctx, tenantID, req.ProductID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	now := s.clock.Now()

	printLog := &models.PrintLog{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ProductID: product.ID,
		UserID:    userID,
		Quantity:  req.Quantity,
		PrintedAt: now,
	}

	result := &models.PrintResult{PrintLog: printLog}

	// every deadline is computed before anything is written
	if product.Category != nil && product.Category.NotificationEnabled {
		if !product.HasValidity() {
			return nil, errors.ValidationError("Product has no validity configured").WithError(expiry.ErrInvalidUnit)
		}

		alertDate, err := expiry.Deadline(now, *product.Validity, *product.ValidityUnit)
		if err != nil {
			return nil, errors.ValidationError("Invalid product validity").WithError(err)
		}

		result.Alert = &models.Alert{
			ID:         uuid.New(),
			TenantID:   tenantID,
			ProductID:  product.ID,
			PrintLogID: printLog.ID,
			AlertDate:  alertDate,
			Status:     models.AlertStatusPending,
			Quantity:   req.Quantity,
			LotNumber:  lotNumber,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	if product.HasSetting() {
		readyAt, err := expiry.Deadline(now, *product.Setting, *product.SettingUnit)
		if err != nil {
			return nil, errors.ValidationError("Invalid product setting").WithError(err)
		}

		result.ReadyAt = &readyAt
	}

	if err := s.printRepo.RecordPrint(ctx, printLog, result.Alert); err != nil {
		return nil, errors.DatabaseError("Failed to record print").WithError(err)
	}

	metrics.PrintsTotal.WithLabelValues(boolLabel(result.Alert != nil)).Inc()

	logger.Info("Print recorded",
		slog.String("printLogId", printLog.ID.String()),
		slog.String("productId", product.ID.String()),
		slog.Bool("alertCreated", result.Alert != nil))

	return result, nil
}

func (s *alertService) Discard(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {
	return s.transition(ctx, tenantID, id, models.AlertStatusDiscarded)
}

func (s *alertService) Resolve(ctx context.Context, tenantID, id uuid.UUID) (*models.Alert, error) {
	return s.transition(ctx, tenantID, id, models.AlertStatusResolved)
}

// transition moves a pending alert to a terminal status. The update is
// conditional on the row still being pending, so two concurrent calls
// cannot both succeed.
func (s *alertService) transition(ctx context.Context, tenantID, id uuid.UUID, to models.AlertStatus) (*models.Alert, error) {

	alert, err := s.alertRepo.GetAlertByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Alert not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch alert").WithError(err)
	}

	if alert.Status.Terminal() {
		return nil, errors.ConflictError("Alert is already " + string(alert.Status))
	}

	now := s.clock.Now()

	if err := s.alertRepo.TransitionPendingAlert(ctx, tenantID, id, to, now); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			// lost a race against another transition
			return nil, errors.ConflictError("Alert is no longer pending").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update alert").WithError(err)
	}

	alert.Status = to
	alert.UpdatedAt = now

	metrics.AlertTransitionsTotal.WithLabelValues(string(to)).Inc()

	middleware.LoggerFromContext(ctx).Info("Alert status changed",
		slog.String("alertId", id.String()),
		slog.String("status", string(to)))

	return alert, nil
}

func (s *alertService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {

	if err := s.alertRepo.DeleteAlert(ctx, tenantID, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Alert not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete alert").WithError(err)
	}

	return nil
}

// ListPending returns pending alerts soonest first, each annotated with the
// whole days left until it expires.
func (s *alertService) ListPending(ctx context.Context, tenantID uuid.UUID, filter *models.AlertFilter) ([]*models.PendingAlert, error) {

	if filter == nil {
		filter = &models.AlertFilter{}
	}

	if filter.Window != "" && !filter.Window.Valid() {
		return nil, errors.AddValidationError("window", "must be one of 7days, 15days, month")
	}

	alerts, err := s.alertRepo.ListPendingAlerts(ctx, tenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch alerts").WithError(err)
	}

	now := s.clock.Now()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]*models.PendingAlert, 0, len(alerts))

	for _, alert := range alerts {
		alert.DaysUntilExpiry = expiry.DaysUntil(alert.AlertDate, now)

		if filter.Window != "" && !filter.Window.Contains(alert.DaysUntilExpiry) {
			continue
		}

		if search != "" && !matchesSearch(alert, search) {
			continue
		}

		filtered = append(filtered, alert)
	}

	return filtered, nil
}

// matchesSearch compares against the product name and against the alert
// date in both ISO and day-first form.
func matchesSearch(alert *models.PendingAlert, search string) bool {
	if strings.Contains(strings.ToLower(alert.ProductName), search) {
		return true
	}

	date := alert.AlertDate.UTC()

	return strings.Contains(date.Format("2006-01-02"), search) ||
		strings.Contains(date.Format("02/01/2006"), search)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
