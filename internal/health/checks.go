package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/pkg/storeapi"
)

type Endpoints struct {
	StoreAPI *storeapi.Client
}

// NewHealthHandler wires the liveness surface. Database and Redis checks
// are registered only when the backing service is enabled; the upstream
// store API is always probed.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "store-api",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.StoreAPI == nil {
					return fmt.Errorf("store api client is not initialized")
				}
				if err := endpoints.StoreAPI.Ping(ctx); err != nil {
					return fmt.Errorf("failed to reach store api: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.Database.Enabled {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if cfg.RedisConnect.Enabled {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
