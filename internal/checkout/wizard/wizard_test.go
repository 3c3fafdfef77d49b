package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/checkout/internal/checkout/domain"
	"github.com/storefront/checkout/internal/checkout/form"
	"github.com/storefront/checkout/internal/pkg/storage"
)

// fakeSubmitter implements OrderSubmitter for testing.
type fakeSubmitter struct {
	err       error
	calls     int
	gotTotal  float64
	gotValues domain.FormValues
}

func (f *fakeSubmitter) Submit(_ context.Context, values domain.FormValues, items []domain.LineItem, total float64) (*domain.OrderSummary, error) {
	f.calls++
	f.gotTotal = total
	f.gotValues = values
	if f.err != nil {
		return nil, f.err
	}
	orderItems := make([]domain.OrderItem, len(items))
	for i, it := range items {
		orderItems[i] = domain.OrderItem{ID: it.ID, Name: it.Title, Quantity: it.Quantity, Price: it.UnitPrice()}
	}
	return &domain.OrderSummary{OrderID: "ORD-test", TotalAmount: total, Items: orderItems}, nil
}

func validValues() domain.FormValues {
	return domain.FormValues{
		FullName:   "John Doe",
		Email:      "john@example.com",
		Phone:      "1234567890",
		Address:    "123 Main Street",
		City:       "New York",
		State:      "NY",
		ZipCode:    "12345",
		Country:    "USA",
		CardNumber: "4242424242424242",
		CardName:   "John Doe",
		ExpiryDate: "12/30",
		CVV:        "123",
	}
}

func newWizard(t *testing.T, submitter OrderSubmitter) (*Orchestrator, *form.State) {
	t.Helper()
	f := form.NewState(context.Background(), storage.NewMemoryStore(), "test")
	return New(f, domain.Steps, submitter), f
}

func TestNew_StatusesStartIdle(t *testing.T) {
	o, _ := newWizard(t, &fakeSubmitter{})

	for i, s := range o.Statuses() {
		assert.Equal(t, StatusIdle, s, "step %d", i)
	}
	assert.Equal(t, 0, o.ActiveStep())
	assert.False(t, o.IsSubmitting())
}

func TestValidateStep_EmptyFieldsFail(t *testing.T) {
	o, _ := newWizard(t, &fakeSubmitter{})

	assert.False(t, o.ValidateStep(0))
	assert.Equal(t, StatusError, o.StatusOf(0))
}

func TestValidateStep_FieldlessStepCompletes(t *testing.T) {
	o, _ := newWizard(t, &fakeSubmitter{})

	// Review carries no fields, so it validates unconditionally.
	assert.True(t, o.ValidateStep(3))
	assert.Equal(t, StatusCompleted, o.StatusOf(3))
}

func TestNext_AdvancesOnValidStep(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())

	require.True(t, o.Next(ctx))
	assert.Equal(t, 1, o.ActiveStep())
	assert.Equal(t, StatusCompleted, o.StatusOf(0))
}

func TestNext_StaysOnInvalidStep(t *testing.T) {
	ctx := context.Background()
	o, _ := newWizard(t, &fakeSubmitter{})

	require.False(t, o.Next(ctx))
	assert.Equal(t, 0, o.ActiveStep())
	assert.Equal(t, StatusError, o.StatusOf(0))
}

func TestNext_NeverPassesLastStep(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())

	for i := 0; i < 10; i++ {
		o.Next(ctx)
	}
	assert.Equal(t, len(domain.Steps)-1, o.ActiveStep())
}

func TestPrevious_NeverRegressesBelowZero(t *testing.T) {
	ctx := context.Background()
	o, _ := newWizard(t, &fakeSubmitter{})

	o.Previous(ctx)
	o.Previous(ctx)
	assert.Equal(t, 0, o.ActiveStep())
}

func TestPrevious_DoesNotRevalidate(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())
	require.True(t, o.Next(ctx))

	// Corrupt a step-1 field, then walk back: the step being left keeps
	// whatever status it had.
	f.SetField(ctx, domain.FieldAddress, "")
	o.Previous(ctx)

	assert.Equal(t, 0, o.ActiveStep())
	assert.Equal(t, StatusIdle, o.StatusOf(1))
}

func TestJumpTo_BackwardAlwaysAllowed(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())
	o.Next(ctx)
	o.Next(ctx)

	assert.True(t, o.JumpTo(ctx, 0))
	assert.Equal(t, 0, o.ActiveStep())
}

func TestJumpTo_ForwardRequiresAllPriorStepsCompleted(t *testing.T) {
	ctx := context.Background()
	o, _ := newWizard(t, &fakeSubmitter{})

	assert.False(t, o.JumpTo(ctx, 2), "prior steps are idle, jump must be ignored")
	assert.Equal(t, 0, o.ActiveStep())
}

func TestJumpTo_ForwardAllowedWhenPriorStepsCompleted(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())
	require.True(t, o.Next(ctx))
	require.True(t, o.Next(ctx))

	// Back on step 0 with steps 0 and 1 completed; jumping to 2 is legal.
	require.True(t, o.JumpTo(ctx, 0))
	assert.True(t, o.JumpTo(ctx, 2))
	assert.Equal(t, 2, o.ActiveStep())
}

func TestJumpTo_ErrorTargetResetsToIdle(t *testing.T) {
	ctx := context.Background()
	o, _ := newWizard(t, &fakeSubmitter{})
	require.False(t, o.Next(ctx))
	require.Equal(t, StatusError, o.StatusOf(0))

	// A jump onto the erroring step itself gives a clean slate.
	require.True(t, o.JumpTo(ctx, 0))
	assert.Equal(t, StatusIdle, o.StatusOf(0))
}

func TestRecomputeStatus_ClearsToIdleNotCompleted(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	require.False(t, o.Next(ctx))
	require.Equal(t, StatusError, o.StatusOf(0))

	valid := validValues()
	f.SetField(ctx, domain.FieldFullName, valid.FullName)
	o.RecomputeStatus(domain.FieldFullName)
	assert.Equal(t, StatusError, o.StatusOf(0), "other fields of the step are still invalid")

	f.SetField(ctx, domain.FieldEmail, valid.Email)
	o.RecomputeStatus(domain.FieldEmail)
	f.SetField(ctx, domain.FieldPhone, valid.Phone)
	o.RecomputeStatus(domain.FieldPhone)

	assert.Equal(t, StatusIdle, o.StatusOf(0), "fixing every field reverts to idle, not completed")
}

func TestRecomputeStatus_IgnoresStepsNotInError(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())
	require.True(t, o.Next(ctx))

	o.RecomputeStatus(domain.FieldFullName)
	assert.Equal(t, StatusCompleted, o.StatusOf(0), "completed status is left alone")
}

func TestSubmit_BeforeLastStepBehavesLikeNext(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{}
	o, f := newWizard(t, sub)
	f.SetAll(ctx, validValues())

	summary, err := o.Submit(ctx, nil, 0)

	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 1, o.ActiveStep())
	assert.Zero(t, sub.calls, "submission service must not run before the last step")
}

func TestSubmit_JumpsToFirstInvalidStep(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{}
	o, f := newWizard(t, sub)
	f.SetAll(ctx, validValues())
	for o.ActiveStep() < len(domain.Steps)-1 {
		require.True(t, o.Next(ctx))
	}

	// Invalidate a field from the shipping step after reaching review.
	f.SetField(ctx, domain.FieldZipCode, "12")

	summary, err := o.Submit(ctx, nil, 0)

	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, 1, o.ActiveStep(), "wizard jumps to the first invalid step")
	assert.Equal(t, StatusError, o.StatusOf(1))
	assert.Zero(t, sub.calls)
}

func TestSubmit_HappyPath(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{}
	o, f := newWizard(t, sub)
	f.SetAll(ctx, validValues())
	for o.ActiveStep() < len(domain.Steps)-1 {
		require.True(t, o.Next(ctx))
	}

	items := []domain.LineItem{
		{ID: "1", Title: "Keyboard", Price: 50, Quantity: 2},
		{ID: "2", Title: "Mouse", Price: 30, Quantity: 1},
	}
	summary, err := o.Submit(ctx, items, 141.7)

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 141.7, summary.TotalAmount)
	assert.Len(t, summary.Items, len(items))
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, 141.7, sub.gotTotal)
	assert.Equal(t, "John Doe", sub.gotValues.FullName)
	assert.False(t, o.IsSubmitting(), "flag clears once the submission resolves")
}

func TestSubmit_ServiceFailureMarksLastStepError(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{err: errors.New("gateway timeout")}
	o, f := newWizard(t, sub)
	values := validValues()
	f.SetAll(ctx, values)
	for o.ActiveStep() < len(domain.Steps)-1 {
		require.True(t, o.Next(ctx))
	}

	summary, err := o.Submit(ctx, nil, 99)

	require.Error(t, err)
	assert.Nil(t, summary)
	last := len(domain.Steps) - 1
	assert.Equal(t, last, o.ActiveStep(), "wizard stays on the last step")
	assert.Equal(t, StatusError, o.StatusOf(last))
	assert.Equal(t, values, f.Values(), "entered data survives a failed submission")
}

func TestColor_ProjectsStatusToTier(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})

	assert.Equal(t, TierPrimary, o.Color(0), "idle maps to the primary tier")

	require.False(t, o.Next(ctx))
	assert.Equal(t, TierAlert, o.Color(0))

	f.SetAll(ctx, validValues())
	require.True(t, o.Next(ctx))
	assert.Equal(t, TierPrimary, o.Color(0), "completed gets no distinct color")
}

func TestReset_ReturnsEveryStatusToIdle(t *testing.T) {
	ctx := context.Background()
	o, f := newWizard(t, &fakeSubmitter{})
	f.SetAll(ctx, validValues())
	require.True(t, o.Next(ctx))

	o.Reset()

	for i := range domain.Steps {
		assert.Equal(t, StatusIdle, o.StatusOf(i))
	}
}
