package catalogsheet

import (
	"context"
	"time"
)

// LockKey is the single lock guarding catalog sheet generation
const LockKey = "catalog-sheet:generation"

// Release gives a held lock back. It is safe to call more than once.
type Release func(ctx context.Context) error

// GenerationLock allows at most one generation at a time, across process
// instances when backed by a shared store.
type GenerationLock interface {
	// TryAcquire takes key without waiting. When key is already held it
	// returns shared.ErrGenerationInProgress. ttl bounds how long a crashed
	// holder can block others.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}
