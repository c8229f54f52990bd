package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
)

// lease represents a held lock with expiration
type lease struct {
	token     string
	expiresAt time.Time
}

// InMemoryGenerationLock implements catalogsheet.GenerationLock with a map.
// This is suitable for single-instance deployments and testing.
type InMemoryGenerationLock struct {
	mu        sync.Mutex
	leases    map[string]lease
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryGenerationLock creates the lock and starts a background
// goroutine that drops expired leases. Call Close to stop it.
func NewInMemoryGenerationLock() *InMemoryGenerationLock {
	l := &InMemoryGenerationLock{
		leases:   make(map[string]lease),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// TryAcquire takes key unless an unexpired lease holds it
func (l *InMemoryGenerationLock) TryAcquire(_ context.Context, key string, ttl time.Duration) (catalogsheet.Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.leases[key]; ok && l.now().Before(held.expiresAt) {
		return nil, shared.ErrGenerationInProgress
	}

	token := uuid.NewString()
	l.leases[key] = lease{token: token, expiresAt: l.now().Add(ttl)}

	return func(context.Context) error {
		l.release(key, token)
		return nil
	}, nil
}

// release deletes the lease only if it still belongs to token, so a holder
// whose lease expired cannot free someone else's.
func (l *InMemoryGenerationLock) release(key, token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if held, ok := l.leases[key]; ok && held.token == token {
		delete(l.leases, key)
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (l *InMemoryGenerationLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

func (l *InMemoryGenerationLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *InMemoryGenerationLock) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, held := range l.leases {
		if !now.Before(held.expiresAt) {
			delete(l.leases, key)
		}
	}
}

// Size returns the number of leases, expired ones included until cleanup
func (l *InMemoryGenerationLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.leases)
}

var _ catalogsheet.GenerationLock = (*InMemoryGenerationLock)(nil)
