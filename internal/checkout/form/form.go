// Package form holds the checkout form values and the active step index,
// mirroring both to the storage port on every change.
//
// Persistence is fire and forget: a failed write is logged and the state
// keeps working in memory, it never surfaces to the caller or blocks
// navigation. On construction the state hydrates from storage; missing or
// corrupt entries fall back to empty values and step zero.
package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/validate"
	"github.com/storefront/checkout/internal/pkg/storage"
)

// State is the mutable form of one checkout session. Not safe for
// concurrent use; the owning session serializes access.
type State struct {
	store   storage.Store
	formKey string
	stepKey string

	values domain.FormValues
	step   int
}

// NewState builds the form state for a session, hydrating any persisted
// draft. The draft keys are scoped to the session id, not the user.
func NewState(ctx context.Context, store storage.Store, sessionID string) *State {
	s := &State{
		store:   store,
		formKey: fmt.Sprintf("checkout:form:%s", sessionID),
		stepKey: fmt.Sprintf("checkout:step:%s", sessionID),
	}

	if _, err := store.Get(ctx, s.formKey, &s.values); err != nil {
		slog.WarnContext(ctx, "discarding unreadable checkout draft", "key", s.formKey, "error", err)
		s.values = domain.FormValues{}
	}
	var step int
	if ok, err := store.Get(ctx, s.stepKey, &step); err != nil {
		slog.WarnContext(ctx, "discarding unreadable checkout step", "key", s.stepKey, "error", err)
	} else if ok && step >= 0 && step < len(domain.Steps) {
		s.step = step
	}

	return s
}

// Values returns a copy of the current form values.
func (s *State) Values() domain.FormValues {
	return s.values
}

// Field returns the current value of a named field.
func (s *State) Field(name string) (string, bool) {
	return s.values.Field(name)
}

// SetField assigns one field and persists the draft. It reports whether
// the field name was known.
func (s *State) SetField(ctx context.Context, name, value string) bool {
	if !s.values.SetField(name, value) {
		return false
	}
	s.persist(ctx, s.formKey, s.values)
	return true
}

// SetAll replaces every form value at once and persists the draft.
func (s *State) SetAll(ctx context.Context, values domain.FormValues) {
	s.values = values
	s.persist(ctx, s.formKey, s.values)
}

// FieldError runs the field's validator against its current value.
// Nil means valid.
func (s *State) FieldError(name string) error {
	value, ok := s.values.Field(name)
	if !ok {
		return nil
	}
	return validate.Field(name, value)
}

// ActiveStep returns the current wizard step index.
func (s *State) ActiveStep() int {
	return s.step
}

// SetActiveStep stores and persists the wizard step index.
func (s *State) SetActiveStep(ctx context.Context, step int) {
	s.step = step
	s.persist(ctx, s.stepKey, step)
}

// Clear resets the form to empty values and step zero and removes the
// persisted entries. Used when an order completes or checkout restarts.
func (s *State) Clear(ctx context.Context) {
	s.values = domain.FormValues{}
	s.step = 0
	if err := s.store.Delete(ctx, s.formKey); err != nil {
		slog.ErrorContext(ctx, "failed to remove checkout draft", "key", s.formKey, "error", err)
	}
	if err := s.store.Delete(ctx, s.stepKey); err != nil {
		slog.ErrorContext(ctx, "failed to remove checkout step", "key", s.stepKey, "error", err)
	}
}

func (s *State) persist(ctx context.Context, key string, value any) {
	if err := s.store.Set(ctx, key, value); err != nil {
		slog.ErrorContext(ctx, "failed to persist checkout state", "key", key, "error", err)
	}
}
