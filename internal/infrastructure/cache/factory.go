package cache

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the store implementation from configuration:
// Redis when enabled, otherwise the in-memory store. A Redis connection
// failure falls back to in-memory with a warning rather than refusing to
// start, because the database key lookup stays authoritative.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if !cfg.Enabled {
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory idempotency store",
			zap.String("addr", cfg.Addr()), zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}
	logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}
