package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/checkout/internal/checkout/coupon"
	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/form"
	"github.com/storefront/checkout/internal/checkout/orderlog"
	"github.com/storefront/checkout/internal/checkout/wizard"
	"github.com/storefront/checkout/internal/pkg/storage"
)

// ErrSessionNotFound is returned when no session matches the given id.
var ErrSessionNotFound = errors.New("session: not found")

// Manager creates and looks up checkout sessions and carries the
// dependencies every session shares: the storage port for drafts, the
// coupon registry, the order submitter and the order history repository.
type Manager struct {
	store     storage.Store
	registry  coupon.Registry
	submitter wizard.OrderSubmitter
	orders    orderlog.Repository
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Checkout
}

// NewManager wires a manager from its collaborators. orders may be nil; in
// that case completed orders are not recorded in the history.
func NewManager(store storage.Store, registry coupon.Registry, submitter wizard.OrderSubmitter, orders orderlog.Repository) *Manager {
	return &Manager{
		store:     store,
		registry:  registry,
		submitter: submitter,
		orders:    orders,
		now:       time.Now,
		sessions:  make(map[string]*Checkout),
	}
}

// Create starts a checkout over an immutable snapshot of the given items.
// A single "buy now" item list works identically to a full cart; nothing
// is ever written back to the originating cart.
func (m *Manager) Create(ctx context.Context, items []domain.LineItem) *Checkout {
	id := uuid.NewString()

	snapshot := make([]domain.LineItem, len(items))
	copy(snapshot, items)

	f := form.NewState(ctx, m.store, id)
	c := &Checkout{
		ID:       id,
		form:     f,
		wizard:   wizard.New(f, domain.Steps, m.submitter),
		items:    snapshot,
		registry: m.registry,
		now:      m.now,
	}
	c.recompute()

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	slog.InfoContext(ctx, "checkout session created", "session_id", id, "items", len(snapshot))
	return c
}

// Get returns an active session by id.
func (m *Manager) Get(id string) (*Checkout, error) {
	m.mu.RLock()
	c, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

// Abandon drops a session and removes its persisted draft.
func (m *Manager) Abandon(ctx context.Context, id string) error {
	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	c.mu.Lock()
	c.form.Clear(ctx)
	c.mu.Unlock()

	slog.InfoContext(ctx, "checkout session abandoned", "session_id", id)
	return nil
}

// Submit finishes the session's checkout and, on success, records the
// order in the history and drops the session. A history write failure is
// logged and does not fail the already-accepted order.
func (m *Manager) Submit(ctx context.Context, id string) (*domain.OrderSummary, error) {
	c, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	summary, err := c.Submit(ctx)
	if err != nil || summary == nil {
		return nil, err
	}

	if m.orders != nil {
		entry, err := orderlog.NewEntry(ctx, id, summary)
		if err == nil {
			err = m.orders.Save(ctx, entry)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to record order history", "order_id", summary.OrderID, "error", err)
		}
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	slog.InfoContext(ctx, "order submitted", "session_id", id, "order_id", summary.OrderID, "total", summary.TotalAmount)
	return summary, nil
}
