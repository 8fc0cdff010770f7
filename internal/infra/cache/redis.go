package cache

import (
	"github.com/redis/go-redis/v9"

	"github.com/encadra/encadra/internal/config"
)

// New builds the redis client used for short-lived project stats caching.
func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}
