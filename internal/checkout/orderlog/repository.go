package orderlog

import "context"

// Repository is the port for persisting and querying order history.
// The session manager depends on this abstraction, not on SQLite, so the
// implementation can be swapped for Postgres or an in-memory fake in tests.
type Repository interface {
	// Save appends one order record. Orders are immutable; there is no
	// update path.
	Save(ctx context.Context, entry *Entry) error

	// GetByOrderID returns a single order, or an error when unknown.
	GetByOrderID(ctx context.Context, orderID string) (*Entry, error)

	// ListByEmail returns a customer's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]*Entry, error)
}
