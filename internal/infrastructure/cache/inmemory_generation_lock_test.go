package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInMemoryGenerationLock_TryAcquire(t *testing.T) {
	lock := NewInMemoryGenerationLock()
	defer lock.Close()

	ctx := context.Background()

	t.Run("second acquire is refused while held", func(t *testing.T) {
		release, err := lock.TryAcquire(ctx, "a", time.Hour)
		require.NoError(t, err)

		_, err = lock.TryAcquire(ctx, "a", time.Hour)
		assert.True(t, errors.Is(err, shared.ErrGenerationInProgress))

		require.NoError(t, release(ctx))
		release2, err := lock.TryAcquire(ctx, "a", time.Hour)
		require.NoError(t, err)
		require.NoError(t, release2(ctx))
	})

	t.Run("keys are independent", func(t *testing.T) {
		r1, err := lock.TryAcquire(ctx, "b", time.Hour)
		require.NoError(t, err)
		r2, err := lock.TryAcquire(ctx, "c", time.Hour)
		require.NoError(t, err)
		require.NoError(t, r1(ctx))
		require.NoError(t, r2(ctx))
	})

	t.Run("release is idempotent", func(t *testing.T) {
		release, err := lock.TryAcquire(ctx, "d", time.Hour)
		require.NoError(t, err)
		require.NoError(t, release(ctx))
		require.NoError(t, release(ctx))
	})
}

func TestInMemoryGenerationLock_Expiry(t *testing.T) {
	lock := NewInMemoryGenerationLock()
	defer lock.Close()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	lock.now = func() time.Time { return now }
	ctx := context.Background()

	stale, err := lock.TryAcquire(ctx, catalogsheet.LockKey, time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := lock.TryAcquire(ctx, catalogsheet.LockKey, time.Minute)
	require.NoError(t, err, "expired lease must not block")

	// the stale holder releasing late must not free the new lease
	require.NoError(t, stale(ctx))
	_, err = lock.TryAcquire(ctx, catalogsheet.LockKey, time.Minute)
	assert.ErrorIs(t, err, shared.ErrGenerationInProgress)

	require.NoError(t, fresh(ctx))
	assert.Equal(t, 0, lock.Size())
}

func TestInMemoryGenerationLock_Cleanup(t *testing.T) {
	lock := NewInMemoryGenerationLock()
	defer lock.Close()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	lock.now = func() time.Time { return now }

	_, err := lock.TryAcquire(context.Background(), "x", time.Second)
	require.NoError(t, err)
	_, err = lock.TryAcquire(context.Background(), "y", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, lock.Size())

	now = now.Add(time.Minute)
	lock.cleanup()
	assert.Equal(t, 1, lock.Size())
}

func TestInMemoryGenerationLock_Concurrent(t *testing.T) {
	lock := NewInMemoryGenerationLock()
	defer lock.Close()

	var (
		wg       sync.WaitGroup
		acquired atomic.Int32
		start    = make(chan struct{})
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := lock.TryAcquire(context.Background(), "race", time.Hour); err == nil {
				acquired.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), acquired.Load())
}

func TestInMemoryGenerationLock_CloseStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lock := NewInMemoryGenerationLock()
	require.NoError(t, lock.Close())
	require.NoError(t, lock.Close())
}
