// Package order builds the immutable order summary at the end of a
// checkout, simulating the processing latency of a real payment backend.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/checkout/internal/checkout/domain"
)

// DefaultDelay approximates the round trip to a payment processor.
const DefaultDelay = 1500 * time.Millisecond

// Service turns validated form values and a cart snapshot into an
// OrderSummary. It never fails for valid inputs (an empty cart and a zero
// total are both acceptable orders); only context cancellation aborts it.
type Service struct {
	delay time.Duration
	now   func() time.Time
	newID func() string
}

// NewService returns a Service with the given simulated processing delay.
func NewService(delay time.Duration) *Service {
	return &Service{
		delay: delay,
		now:   time.Now,
		newID: func() string { return fmt.Sprintf("ORD-%s", uuid.NewString()) },
	}
}

// Submit waits out the simulated delay, then builds the summary. The total
// is taken verbatim from the caller; the authoritative pricing lives with
// the session, not here.
func (s *Service) Submit(ctx context.Context, values domain.FormValues, items []domain.LineItem, total float64) (*domain.OrderSummary, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	orderItems := make([]domain.OrderItem, len(items))
	for i, it := range items {
		orderItems[i] = domain.OrderItem{
			ID:       it.ID,
			Name:     it.Title,
			Quantity: it.Quantity,
			Price:    it.UnitPrice(),
			Image:    it.Thumbnail,
		}
	}

	return &domain.OrderSummary{
		OrderID:     s.newID(),
		FullName:    values.FullName,
		Email:       values.Email,
		Address:     formatAddress(values),
		TotalAmount: total,
		OrderDate:   s.now().Format("January 2, 2006"),
		Items:       orderItems,
	}, nil
}

// formatAddress joins the five shipping fields into the single display
// string stored on the order.
func formatAddress(v domain.FormValues) string {
	return fmt.Sprintf("%s, %s, %s %s, %s", v.Address, v.City, v.State, v.ZipCode, v.Country)
}
