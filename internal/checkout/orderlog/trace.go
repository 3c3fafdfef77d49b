package orderlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/storefront/checkout/internal/checkout/domain"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its identifiers as hex strings. Both fields are empty when the context
// carries no valid span (unit tests, tracing disabled); callers store the
// empty strings as-is.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds a history record from a completed order summary, with
// trace info extracted from ctx.
func NewEntry(ctx context.Context, sessionID string, summary *domain.OrderSummary) (*Entry, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("orderlog: encode summary for %q: %w", summary.OrderID, err)
	}
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		OrderID:     summary.OrderID,
		SessionID:   sessionID,
		Email:       summary.Email,
		TotalAmount: summary.TotalAmount,
		Summary:     string(payload),
		TraceID:     ti.TraceID,
		SpanID:      ti.SpanID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
