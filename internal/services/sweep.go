package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/api/middleware"
	"github.com/savedate/save-date/internal/clock"
	"github.com/savedate/save-date/internal/config"
	"github.com/savedate/save-date/internal/expiry"
	"github.com/savedate/save-date/internal/metrics"
	"github.com/savedate/save-date/internal/models"
	repository "github.com/savedate/save-date/internal/repositories"
)

const sweepLeaseName = "expiry-sweep"

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Skipped bool `json:"skipped"`
	Scanned int  `json:"scanned"`
	Due     int  `json:"due"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

type SweepService interface {
	Run(ctx context.Context) (SweepReport, error)
	LastCompleted() time.Time
	LastObserved() time.Time
}

type sweepService struct {
	productRepo repository.ProductRepository
	subRepo     repository.SubscriptionRepository
	leaseRepo   repository.LeaseRepository
	notifier    NotificationService
	clock       clock.Clock
	cfg         config.Sweep

	mu            sync.RWMutex
	lastCompleted time.Time
	lastObserved  time.Time
}

func NewSweepService(productRepo repository.ProductRepository, subRepo repository.SubscriptionRepository, leaseRepo repository.LeaseRepository,
	notifier NotificationService, clk clock.Clock, cfg config.Sweep) SweepService {
	return &sweepService{
		productRepo: productRepo,
		subRepo:     subRepo,
		leaseRepo:   leaseRepo,
		notifier:    notifier,
		clock:       clk,
		cfg:         cfg,
	}
}

// Run warns subscribers about every product whose creation-anchored expiry
// falls within the configured number of days. Only one instance runs a
// sweep at a time; the others return a skipped report.
func (s *sweepService) Run(ctx context.Context) (SweepReport, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("job", sweepLeaseName))

	var report SweepReport

	token := uuid.NewString()

	acquired, err := s.leaseRepo.Acquire(ctx, sweepLeaseName, token, s.cfg.LeaseTTL)
	if err != nil {
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to acquire sweep lease: %w", err)
	}

	if !acquired {
		logger.Info("Sweep already running elsewhere, skipping")
		metrics.SweepRunsTotal.WithLabelValues("skipped").Inc()

		report.Skipped = true

		// the lease holder is sweeping on our behalf
		s.mu.Lock()
		s.lastObserved = s.clock.Now()
		s.mu.Unlock()

		return report, nil
	}

	defer func() {
		// the run context may already be cancelled
		if err := s.leaseRepo.Release(context.WithoutCancel(ctx), sweepLeaseName, token); err != nil {
			logger.Warn("Failed to release sweep lease", slog.String("error", err.Error()))
		}
	}()

	start := s.clock.Now()

	products, err := s.productRepo.ListProductsWithValidity(ctx)
	if err != nil {
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to list products: %w", err)
	}

	subscribers := make(map[[2]uuid.UUID][]models.Subscriber)

	for _, product := range products {
		if err := ctx.Err(); err != nil {
			metrics.SweepRunsTotal.WithLabelValues("cancelled").Inc()
			return report, err
		}

		report.Scanned++

		daysLeft, ok := s.daysLeft(logger, product, start)
		if !ok || daysLeft < 0 || daysLeft > s.cfg.WarnWithinDays {
			continue
		}

		report.Due++

		key := [2]uuid.UUID{product.TenantID, product.CategoryID}

		recipients, seen := subscribers[key]
		if !seen {
			recipients, err = s.subRepo.ListSubscribers(ctx, product.TenantID, product.CategoryID)
			if err != nil {
				logger.Error("Failed to list subscribers",
					slog.String("productId", product.ID.String()),
					slog.String("error", err.Error()))

				continue
			}

			subscribers[key] = recipients
		}

		if len(recipients) == 0 {
			continue
		}

		result := s.notifier.Dispatch(ctx, product.TenantID, recipients, expiryMessage(product, daysLeft))

		report.Sent += result.Sent
		report.Failed += result.Failed
	}

	elapsed := s.clock.Now().Sub(start)

	metrics.SweepRunsTotal.WithLabelValues("completed").Inc()
	metrics.SweepDuration.Observe(elapsed.Seconds())

	s.mu.Lock()
	s.lastCompleted = s.clock.Now()
	s.lastObserved = s.lastCompleted
	s.mu.Unlock()

	logger.Info("Sweep completed",
		slog.Int("scanned", report.Scanned),
		slog.Int("due", report.Due),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", elapsed))

	return report, nil
}

func (s *sweepService) daysLeft(logger *slog.Logger, product *models.Product, now time.Time) (int, bool) {
	if !product.HasValidity() {
		return 0, false
	}

	dueDate, err := expiry.Deadline(product.CreatedAt, *product.Validity, *product.ValidityUnit)
	if err != nil {
		logger.Warn("Skipping product with invalid validity",
			slog.String("productId", product.ID.String()),
			slog.String("error", err.Error()))

		return 0, false
	}

	return expiry.DaysUntil(dueDate, now), true
}

// LastCompleted is the zero time until the first successful run.
func (s *sweepService) LastCompleted() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastCompleted
}

// LastObserved is the latest run this instance completed or skipped because
// another instance held the lease.
func (s *sweepService) LastObserved() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastObserved
}

func expiryMessage(product *models.Product, daysLeft int) *models.Message {
	productID := product.ID

	var body string

	switch daysLeft {
	case 0:
		body = fmt.Sprintf("%s expires today.", product.Name)
	case 1:
		body = fmt.Sprintf("%s expires in 1 day.", product.Name)
	default:
		body = fmt.Sprintf("%s expires in %d days.", product.Name, daysLeft)
	}

	return &models.Message{
		Title:     "Expiry warning: " + product.Name,
		Body:      body,
		ProductID: &productID,
	}
}
