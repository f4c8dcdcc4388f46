package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaseRepository is a best-effort distributed mutex. A lease expires on its
// own after ttl so a crashed holder cannot block later runs forever.
type LeaseRepository interface {
	Acquire(ctx context.Context, name, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, token string) error
}

// only the holder may delete its lease
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type leaseRepository struct {
	client *redis.Client
}

func NewLeaseRepo(client *redis.Client) LeaseRepository {
	return &leaseRepository{client: client}
}

func LeaseKey(name string) string {
	return "lease:" + name
}

func (r *leaseRepository) Acquire(ctx context.Context, name, token string, ttl time.Duration) (bool, error) {

	ok, err := r.client.SetNX(ctx, LeaseKey(name), token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %s: %w", name, err)
	}

	return ok, nil
}

func (r *leaseRepository) Release(ctx context.Context, name, token string) error {

	if err := releaseScript.Run(ctx, r.client, []string{LeaseKey(name)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lease %s: %w", name, err)
	}

	return nil
}
