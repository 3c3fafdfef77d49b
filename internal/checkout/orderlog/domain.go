// Package orderlog defines the durable order history. Every successful
// submission appends one immutable record, correlated with the distributed
// trace that produced it via the trace_id field.
package orderlog

import "time"

// Entry is a single row of the order history.
type Entry struct {
	// OrderID is the public identifier minted by the submission service.
	OrderID string

	// SessionID is the checkout session that produced the order.
	SessionID string

	// Email allows the history to be queried per customer.
	Email string

	// TotalAmount mirrors the summary's authoritative total for cheap
	// listing without decoding the payload.
	TotalAmount float64

	// Summary is the JSON-serialised OrderSummary exactly as returned to
	// the customer.
	Summary string

	// TraceID is the W3C trace ID of the OpenTelemetry span active at
	// submission time; empty when no span was recording.
	TraceID string

	// SpanID pinpoints the submitting span within the trace.
	SpanID string

	// CreatedAt is the wall-clock time the record was written.
	CreatedAt time.Time
}
