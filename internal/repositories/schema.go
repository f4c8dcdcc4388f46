package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements are idempotent and run in order on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'member',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		name VARCHAR(200) NOT NULL,
		notification_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		category_id UUID NOT NULL REFERENCES categories(id),
		name VARCHAR(200) NOT NULL,
		validity INTEGER CHECK (validity > 0 AND validity <= 87600),
		validity_unit VARCHAR(10) CHECK (validity_unit IN ('hours', 'days')),
		setting INTEGER CHECK (setting > 0 AND setting <= 87600),
		setting_unit VARCHAR(10) CHECK (setting_unit IN ('hours', 'days')),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((validity IS NULL) = (validity_unit IS NULL)),
		CHECK ((setting IS NULL) = (setting_unit IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_tenant ON products (tenant_id) WHERE deleted = FALSE`,
	`CREATE TABLE IF NOT EXISTS print_logs (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		product_id UUID NOT NULL REFERENCES products(id),
		user_id UUID NOT NULL REFERENCES users(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		printed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_print_logs_tenant_printed ON print_logs (tenant_id, printed_at DESC)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		product_id UUID NOT NULL REFERENCES products(id),
		print_log_id UUID NOT NULL UNIQUE REFERENCES print_logs(id),
		alert_date TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		lot_number VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_tenant_status_date ON alerts (tenant_id, status, alert_date)`,
	`CREATE TABLE IF NOT EXISTS notification_subscriptions (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		user_id UUID NOT NULL REFERENCES users(id),
		category_id UUID REFERENCES categories(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_unique
		ON notification_subscriptions (tenant_id, user_id, COALESCE(category_id, '00000000-0000-0000-0000-000000000000'::uuid))`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		user_id UUID NOT NULL REFERENCES users(id),
		product_id UUID REFERENCES products(id),
		type VARCHAR(20) NOT NULL,
		recipient VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		status VARCHAR(20) NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_tenant_created ON notifications (tenant_id, created_at DESC)`,
}

func InitSchema(ctx context.Context, db *sql.DB) error {

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}
