package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/config"
	"github.com/aaravmahajanofficial/storefront-cart-service/pkg/storeapi"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	StoreAPI storeapi.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-cart-service",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "store_api",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
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
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
