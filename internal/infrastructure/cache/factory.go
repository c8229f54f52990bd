package cache

import (
	"fmt"

	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LockFactory creates generation locks based on configuration
type LockFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LockFactoryOption is a functional option for configuring the factory
type LockFactoryOption func(*LockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockFactoryOption {
	return func(f *LockFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory lock
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) LockFactoryOption {
	return func(f *LockFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLockFactory creates a new factory
func NewLockFactory(cfg config.RedisConfig, opts ...LockFactoryOption) *LockFactory {
	f := &LockFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Lock is a generation lock that must be closed on shutdown
type Lock interface {
	catalogsheet.GenerationLock
	Close() error
}

// CreateRedisLock creates a Redis-backed lock
func (f *LockFactory) CreateRedisLock() (*RedisGenerationLock, error) {
	lock, err := NewRedisGenerationLock(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis generation lock: %w", err)
	}
	return lock, nil
}

// CreateLock returns the Redis lock when Redis is enabled and reachable.
// With Redis disabled it returns the in-memory lock directly.
// WARNING: the in-memory lock does not coordinate separate processes.
func (f *LockFactory) CreateLock() (Lock, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory generation lock")
		return NewInMemoryGenerationLock(), nil
	}

	lock, err := f.CreateRedisLock()
	if err == nil {
		f.logger.Info("using Redis generation lock", zap.String("addr", f.redisConfig.Addr()))
		return lock, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for generation lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory generation lock. "+
		"Concurrent generations on other instances will not be blocked.",
		zap.Error(err),
	)
	return NewInMemoryGenerationLock(), nil
}
