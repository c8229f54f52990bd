package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
)

const defaultLockPrefix = "storefront:lock:"

// releaseScript deletes the key only when it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGenerationLock implements catalogsheet.GenerationLock using Redis.
// Every instance pointing at the same Redis shares the lock.
type RedisGenerationLock struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisGenerationLock connects to Redis and verifies the connection
func NewRedisGenerationLock(cfg RedisConfig) (*RedisGenerationLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisGenerationLockWithClient(client, ""), nil
}

// NewRedisGenerationLockWithClient creates a lock with an existing client
func NewRedisGenerationLockWithClient(client *redis.Client, keyPrefix string) *RedisGenerationLock {
	if keyPrefix == "" {
		keyPrefix = defaultLockPrefix
	}
	return &RedisGenerationLock{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// TryAcquire uses SET NX PX so acquisition and expiry are one operation
func (l *RedisGenerationLock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (catalogsheet.Release, error) {
	fullKey := l.keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, shared.ErrGenerationInProgress
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// Close closes the Redis client
func (l *RedisGenerationLock) Close() error {
	return l.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (l *RedisGenerationLock) GetClient() *redis.Client {
	return l.client
}

var _ catalogsheet.GenerationLock = (*RedisGenerationLock)(nil)
