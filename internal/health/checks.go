package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/savedate/save-date/internal/config"
)

const Version = "1.0.0"

// SweepProbe reports when this instance last saw a sweep happen, either by
// running it or by finding another replica's lease on it.
type SweepProbe interface {
	LastObserved() time.Time
}

func NewHealthHandler(cfg *config.Config, sweep SweepProbe) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}

	if cfg.Sweep.Enabled && sweep != nil {
		checks = append(checks, health.Config{
			Name:      "expiry-sweep",
			Timeout:   time.Second,
			SkipOnErr: true,
			Check:     sweepCheck(sweep, 25*time.Hour),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.OTel.ServiceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// sweepCheck degrades once a daily sweep has been missed. A sweep that never
// ran yet is fine, the process may have just started.
func sweepCheck(probe SweepProbe, maxAge time.Duration) health.CheckFunc {
	return func(ctx context.Context) error {
		last := probe.LastObserved()
		if last.IsZero() {
			return nil
		}

		if age := time.Since(last); age > maxAge {
			return fmt.Errorf("last expiry sweep observed %s ago", age.Round(time.Minute))
		}

		return nil
	}
}
