// Package session owns one checkout per customer tab: the immutable cart
// snapshot, the form state, the step wizard, coupon state and the live
// pricing breakdown. All collaborators arrive through the constructor;
// nothing here reaches into ambient globals.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/storefront/checkout/internal/checkout/coupon"
	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/form"
	"github.com/storefront/checkout/internal/checkout/pricing"
	"github.com/storefront/checkout/internal/checkout/wizard"
)

var (
	// ErrUnknownField is returned when a field name matches no form field.
	ErrUnknownField = errors.New("session: unknown form field")

	// ErrItemNotFound is returned when a line item id is not in the snapshot.
	ErrItemNotFound = errors.New("session: line item not found")

	// ErrSubmissionInFlight is returned on a re-entrant submit. The wizard
	// itself does not defend against this; the session is the caller-side
	// guard the design delegates it to.
	ErrSubmissionInFlight = errors.New("session: submission already in flight")
)

// Checkout is one active checkout session. A session serializes its own
// operations with a mutex: within a session the flow is single-threaded,
// matching one browser tab.
type Checkout struct {
	ID string

	mu       sync.Mutex
	form     *form.State
	wizard   *wizard.Orchestrator
	items    []domain.LineItem
	registry coupon.Registry
	now      func() time.Time

	applied  *domain.Coupon
	discount float64
	pricing  domain.PricingBreakdown

	inFlight atomic.Bool
}

// View is the read model of a session handed to the presentation layer.
type View struct {
	ID           string                  `json:"id"`
	ActiveStep   int                     `json:"activeStep"`
	Steps        []domain.Step           `json:"steps"`
	Statuses     []wizard.Status         `json:"statuses"`
	Tiers        []wizard.Tier           `json:"tiers"`
	IsSubmitting bool                    `json:"isSubmitting"`
	Values       domain.FormValues       `json:"values"`
	Items        []domain.LineItem       `json:"items"`
	Pricing      domain.PricingBreakdown `json:"pricing"`
	CouponCode   string                  `json:"couponCode,omitempty"`
}

// Snapshot returns the current state of the session.
func (c *Checkout) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	statuses := c.wizard.Statuses()
	tiers := make([]wizard.Tier, len(statuses))
	for i := range statuses {
		tiers[i] = c.wizard.Color(i)
	}
	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)

	v := View{
		ID:           c.ID,
		ActiveStep:   c.wizard.ActiveStep(),
		Steps:        domain.Steps,
		Statuses:     statuses,
		Tiers:        tiers,
		IsSubmitting: c.inFlight.Load(),
		Values:       c.form.Values(),
		Items:        items,
		Pricing:      c.pricing,
	}
	if c.applied != nil {
		v.CouponCode = c.applied.Code
	}
	return v
}

// SetField updates one form field, persists the draft, and synchronously
// re-derives the owning step's status so a fixed step drops from error
// back to idle without waiting for the next navigation. The returned
// fieldErr is the field's validation message (nil when valid); it is data,
// not a failure of the operation itself.
func (c *Checkout) SetField(ctx context.Context, name, value string) (fieldErr, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.form.SetField(ctx, name, value) {
		return nil, ErrUnknownField
	}
	c.wizard.RecomputeStatus(name)
	return c.form.FieldError(name), nil
}

// Next validates the active step and advances on success.
func (c *Checkout) Next(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard.Next(ctx)
}

// Previous moves back one step without re-validation.
func (c *Checkout) Previous(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wizard.Previous(ctx)
}

// JumpTo attempts a direct jump; disallowed jumps are silently ignored and
// reported as false.
func (c *Checkout) JumpTo(ctx context.Context, target int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard.JumpTo(ctx, target)
}

// ApplyCoupon validates the code at the current subtotal and, when valid,
// makes it the active coupon and recomputes pricing.
func (c *Checkout) ApplyCoupon(ctx context.Context, code string) coupon.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	applied := ""
	if c.applied != nil {
		applied = c.applied.Code
	}
	res := coupon.Validate(code, c.registry, c.pricing.Subtotal, applied, c.now())
	if !res.Valid {
		return res
	}
	c.applied = res.Coupon
	c.discount = res.Discount
	c.recompute()
	slog.InfoContext(ctx, "coupon applied", "session_id", c.ID, "code", res.Coupon.Code, "discount", res.Discount)
	return res
}

// RemoveCoupon clears the active coupon and restores undiscounted pricing.
func (c *Checkout) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = nil
	c.discount = 0
	c.recompute()
}

// UpdateQuantity changes a snapshot line's quantity and recomputes pricing.
// A quantity below one removes the line. The originating cart is never
// touched.
func (c *Checkout) UpdateQuantity(id string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		return c.removeLocked(id)
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			c.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem drops a line from the snapshot and recomputes pricing.
func (c *Checkout) RemoveItem(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(id)
}

func (c *Checkout) removeLocked(id string) error {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// Submit runs the wizard's terminal action. Before the last step it
// behaves like Next and returns (nil, nil). On the last step a fully valid
// wizard reaches the submission service; the resulting summary is returned
// and the session resets for a fresh checkout. A nil summary with nil
// error means the wizard moved (or refused to) instead of submitting.
func (c *Checkout) Submit(ctx context.Context) (*domain.OrderSummary, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	summary, err := c.wizard.Submit(ctx, c.items, c.pricing.Total)
	if err != nil || summary == nil {
		return nil, err
	}

	c.reset(ctx)
	return summary, nil
}

// IsSubmitting reports whether a submission is in flight. Readable without
// the session lock so status checks never queue behind the simulated
// processing delay.
func (c *Checkout) IsSubmitting() bool {
	return c.inFlight.Load()
}

// reset clears form, statuses and coupon state after a completed order.
func (c *Checkout) reset(ctx context.Context) {
	c.form.Clear(ctx)
	c.wizard.Reset()
	c.applied = nil
	c.discount = 0
	c.recompute()
}

// recompute re-derives the pricing breakdown from the current snapshot.
// A percentage coupon's discount follows the subtotal it is applied to,
// so quantity edits re-derive the amount from the coupon rule.
func (c *Checkout) recompute() {
	if c.applied != nil && c.applied.DiscountType == domain.DiscountPercentage {
		base := pricing.Compute(c.items, 0)
		c.discount = base.Subtotal * c.applied.DiscountValue / 100
	}
	c.pricing = pricing.Compute(c.items, c.discount)
}
