// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// WAL mode is enabled on Open so the history endpoint can read while a
// submission goroutine writes. The pure-Go modernc.org/sqlite driver keeps
// the build CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront/checkout/internal/checkout/orderlog"

	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. Orders are immutable: rows
// are inserted on successful submission and never updated.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Public order identifier minted by the submission service.
    order_id      TEXT    NOT NULL UNIQUE,

    -- Checkout session that produced the order.
    session_id    TEXT    NOT NULL,

    -- Customer email for per-customer history queries.
    email         TEXT    NOT NULL,

    -- Authoritative total, duplicated out of the payload for listing.
    total_amount  REAL    NOT NULL,

    -- Full OrderSummary as JSON, exactly as returned to the customer.
    summary       TEXT    NOT NULL,

    -- W3C trace/span ids of the submitting request ('' when untraced).
    trace_id      TEXT    NOT NULL DEFAULT '',
    span_id       TEXT    NOT NULL DEFAULT '',

    -- RFC3339 timestamp stored as TEXT, SQLite idiom.
    created_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email, created_at);
CREATE INDEX IF NOT EXISTS idx_orders_trace_id ON orders(trace_id);
`

// ErrNotFound is returned when no order matches the requested id.
var ErrNotFound = errors.New("sqlite: order not found")

// Repository is the SQLite implementation of orderlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// busy_timeout waits for locks instead of failing immediately; WAL
	// lets readers run alongside the single writer.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts one order record. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *orderlog.Entry) error {
	const q = `
		INSERT INTO orders
			(order_id, session_id, email, total_amount, summary, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.SessionID,
		entry.Email,
		entry.TotalAmount,
		entry.Summary,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save order %q: %w", entry.OrderID, err)
	}
	return nil
}

// GetByOrderID returns a single order record.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*orderlog.Entry, error) {
	const q = `
		SELECT order_id, session_id, email, total_amount, summary, trace_id, span_id, created_at
		FROM   orders
		WHERE  order_id = ?`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", orderID, err)
	}
	return entry, nil
}

// ListByEmail returns every order recorded for the email, newest first.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*orderlog.Entry, error) {
	const q = `
		SELECT order_id, session_id, email, total_amount, summary, trace_id, span_id, created_at
		FROM   orders
		WHERE  email = ?
		ORDER  BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders for %q: %w", email, err)
	}
	defer rows.Close()

	var entries []*orderlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order for %q: %w", email, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders for %q: %w", email, err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*orderlog.Entry, error) {
	var entry orderlog.Entry
	var createdAt string
	if err := row.Scan(
		&entry.OrderID,
		&entry.SessionID,
		&entry.Email,
		&entry.TotalAmount,
		&entry.Summary,
		&entry.TraceID,
		&entry.SpanID,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	entry.CreatedAt, err = parseRFC3339(createdAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
