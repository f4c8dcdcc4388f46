package cache

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Key joins prefix and parts with ':'.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

const (
	ProductKeyPrefix = "product"
)

// ProductTenantPrefix matches every cached product of one tenant.
func ProductTenantPrefix(tenantID uuid.UUID) string {
	return Key(ProductKeyPrefix, tenantID.String(), "")
}

// ProductKey includes the tenant so a cached product can only be served to
// its owner.
func ProductKey(tenantID, productID uuid.UUID) string {
	return Key(ProductKeyPrefix, tenantID.String(), productID.String())
}
