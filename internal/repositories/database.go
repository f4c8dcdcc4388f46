package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/lib/pq"
	"github.com/savedate/save-date/internal/config"
	"github.com/savedate/save-date/internal/utils"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ErrNotFound is returned when a row does not exist or belongs to another tenant.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type Repositories struct {
	DB           *sql.DB
	Tenant       TenantRepository
	User         UserRepository
	Category     CategoryRepository
	Product      ProductRepository
	Print        PrintRepository
	Alert        AlertRepository
	Subscription SubscriptionRepository
	Notification NotificationRepository
	Dashboard    DashboardRepository
}

func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(), otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)
	utils.SetDBTimeout(cfg.Database.QueryTimeout)

	pingCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:           db,
		Tenant:       NewTenantRepo(db),
		User:         NewUserRepo(db),
		Category:     NewCategoryRepo(db),
		Product:      NewProductRepo(db),
		Print:        NewPrintRepo(db),
		Alert:        NewAlertRepo(db),
		Subscription: NewSubscriptionRepo(db),
		Notification: NewNotificationRepo(db),
		Dashboard:    NewDashboardRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
