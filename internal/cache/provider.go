package cache

import (
	"context"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"go.uber.org/fx"
)

// NewCache picks the cache backend from cfg.Cache.Provider
func NewCache(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) Cache {
	if cfg.Cache.Enabled && cfg.Cache.Provider == types.CacheProviderRedis {
		log.Infow("initializing redis cache", "address", cfg.Redis.Address)
		c := NewRedisCache(cfg, log)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return c.Close()
			},
		})
		return c
	}

	log.Infow("initializing in-memory cache", "enabled", cfg.Cache.Enabled)
	return NewInMemoryCache(cfg)
}
