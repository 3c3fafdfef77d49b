// Package storage defines the persisted key/value port the checkout core
// depends on, plus Redis and in-memory implementations. Values are JSON
// serialized; the core never sees the backing technology.
package storage

import "context"

// Store is the persistence port. Get reports a miss with (false, nil)
// rather than an error so callers can fall back to defaults cheaply.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
