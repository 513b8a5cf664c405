package driven

import (
	"context"
	"time"
)

// DistributedLock coordinates exclusive work across instances. The worker
// takes a per-material lock so two replicas never generate notes for the
// same material concurrently.
type DistributedLock interface {
	// Acquire attempts to take a named lock; returns false if already held
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release releases a named lock if held by this instance
	Release(ctx context.Context, name string) error

	// Extend extends the TTL of a currently held lock
	Extend(ctx context.Context, name string, ttl time.Duration) error

	// Ping checks if the lock backend is healthy
	Ping(ctx context.Context) error
}
