package groupstore

import (
	"context"
	"time"
)

// GroupStore abstracts where group epochs live.
// Use Local (default) for in-process epochs, or Redis to share epochs across
// replicas and survive restarts.
//
// An epoch is an opaque monotonic counter per group name. Entries stamped
// with an older epoch are unreachable; callers only ever compare epochs,
// never interpret them.
type GroupStore interface {
	// Current returns the group's epoch; a group never advanced is at 0.
	Current(ctx context.Context, group string) (uint64, error)
	// Advance atomically increments the epoch and returns the new value.
	// Advancing an unknown group creates it at epoch 1.
	Advance(ctx context.Context, group string) (uint64, error)
	// Cleanup prunes long-inactive group metadata if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
