// Package wizard drives the multi-step checkout flow: it tracks the active
// step, a status per step, and gates every navigation through the field
// validators. It is the only component allowed to move the wizard.
package wizard

import (
	"context"
	"log/slog"

	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/form"
)

// Status is the validation state of a single step.
//
// A step becomes StatusCompleted only through an explicit successful
// validation pass triggered by forward navigation. It becomes StatusError
// when validation fails, and reverts to StatusIdle (never silently to
// completed) once all of its field errors clear.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Tier is the display affordance derived from a step status. Only the
// error state gets a distinct tier; completion is signalled separately.
type Tier string

const (
	TierAlert   Tier = "alert"
	TierPrimary Tier = "primary"
)

// OrderSubmitter is the port to the order submission service. The total is
// the caller's authoritative figure; the submitter does not recompute it.
type OrderSubmitter interface {
	Submit(ctx context.Context, values domain.FormValues, items []domain.LineItem, total float64) (*domain.OrderSummary, error)
}

// Orchestrator is the checkout step state machine. It is not safe for
// concurrent use; the owning session serializes access. It does not guard
// against re-entrant Submit calls either: callers must check IsSubmitting
// and disable the action while a submission is in flight.
type Orchestrator struct {
	steps     []domain.Step
	form      *form.State
	submitter OrderSubmitter

	statuses   []Status
	submitting bool
}

// New builds an orchestrator over the given steps. The active step may have
// been restored from a persisted draft, but statuses always start idle:
// they are derived state and are never persisted.
func New(f *form.State, steps []domain.Step, submitter OrderSubmitter) *Orchestrator {
	statuses := make([]Status, len(steps))
	for i := range statuses {
		statuses[i] = StatusIdle
	}
	return &Orchestrator{
		steps:     steps,
		form:      f,
		submitter: submitter,
		statuses:  statuses,
	}
}

// ActiveStep returns the current step index.
func (o *Orchestrator) ActiveStep() int {
	return o.form.ActiveStep()
}

// Statuses returns a copy of the per-step statuses.
func (o *Orchestrator) Statuses() []Status {
	out := make([]Status, len(o.statuses))
	copy(out, o.statuses)
	return out
}

// StatusOf returns the status of one step.
func (o *Orchestrator) StatusOf(i int) Status {
	if i < 0 || i >= len(o.statuses) {
		return StatusIdle
	}
	return o.statuses[i]
}

// IsSubmitting reports whether a submission is in flight.
func (o *Orchestrator) IsSubmitting() bool {
	return o.submitting
}

// ValidateStep runs every field validator of step i. A step without fields
// (review) always passes. The step status is updated to completed or error
// as a side effect.
func (o *Orchestrator) ValidateStep(i int) bool {
	if i < 0 || i >= len(o.steps) {
		return false
	}
	for _, field := range o.steps[i].Fields {
		if err := o.form.FieldError(field); err != nil {
			o.statuses[i] = StatusError
			return false
		}
	}
	o.statuses[i] = StatusCompleted
	return true
}

// Next validates the current step and, on success, advances by one without
// ever passing the last step. On failure the wizard stays put with the
// step marked StatusError.
func (o *Orchestrator) Next(ctx context.Context) bool {
	current := o.form.ActiveStep()
	if !o.ValidateStep(current) {
		return false
	}
	o.form.SetActiveStep(ctx, min(current+1, len(o.steps)-1))
	return true
}

// Previous moves back one step unconditionally, never below zero. The step
// being left is not re-validated.
func (o *Orchestrator) Previous(ctx context.Context) {
	o.form.SetActiveStep(ctx, max(o.form.ActiveStep()-1, 0))
}

// JumpTo moves directly to target. Backward jumps (target at or before the
// current step) are always allowed. A forward jump requires every step
// strictly before target to be completed; otherwise the jump is silently
// ignored. An allowed jump onto a step in error resets that step to idle,
// giving the user a clean slate without re-validating.
func (o *Orchestrator) JumpTo(ctx context.Context, target int) bool {
	if target < 0 || target >= len(o.steps) {
		return false
	}
	current := o.form.ActiveStep()
	if target > current {
		for i := 0; i < target; i++ {
			if o.statuses[i] != StatusCompleted {
				return false
			}
		}
	}
	if o.statuses[target] == StatusError {
		o.statuses[target] = StatusIdle
	}
	o.form.SetActiveStep(ctx, target)
	return true
}

// RecomputeStatus re-evaluates the status of the step owning the given
// field. Called synchronously after every field mutation so that a step in
// error drops back to idle the moment its last field error clears. It
// never promotes to completed: that requires an explicit Next.
func (o *Orchestrator) RecomputeStatus(field string) {
	i := domain.StepIndexOf(o.steps, field)
	if i < 0 || o.statuses[i] != StatusError {
		return
	}
	for _, f := range o.steps[i].Fields {
		if o.form.FieldError(f) != nil {
			return
		}
	}
	o.statuses[i] = StatusIdle
}

// Submit finishes the checkout. Invoked before the last step it behaves
// exactly like Next. On the last step it re-validates every step in order;
// the first invalid step becomes active and marked StatusError and the
// submission service is never called. Only a fully valid wizard reaches
// the submitter. A submitter failure marks the last step StatusError and
// keeps the entered values intact so the user can retry.
func (o *Orchestrator) Submit(ctx context.Context, items []domain.LineItem, total float64) (*domain.OrderSummary, error) {
	last := len(o.steps) - 1
	current := o.form.ActiveStep()
	if current < last {
		o.Next(ctx)
		return nil, nil
	}

	for i := range o.steps {
		if !o.ValidateStep(i) {
			slog.InfoContext(ctx, "submission blocked by invalid step", "step", o.steps[i].Key)
			o.form.SetActiveStep(ctx, i)
			return nil, nil
		}
	}

	o.submitting = true
	defer func() { o.submitting = false }()

	summary, err := o.submitter.Submit(ctx, o.form.Values(), items, total)
	if err != nil {
		o.statuses[last] = StatusError
		slog.ErrorContext(ctx, "order submission failed", "error", err)
		return nil, err
	}
	return summary, nil
}

// Reset returns every status to idle. Used when a session restarts after a
// completed order.
func (o *Orchestrator) Reset() {
	for i := range o.statuses {
		o.statuses[i] = StatusIdle
	}
}

// Color projects a step status onto a display tier: error maps to the
// alert tier, everything else to the primary tier.
func (o *Orchestrator) Color(i int) Tier {
	if o.StatusOf(i) == StatusError {
		return TierAlert
	}
	return TierPrimary
}
