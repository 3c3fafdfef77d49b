package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/checkout/internal/checkout/domain"
)

func TestCompute_ExampleCart(t *testing.T) {
	items := []domain.LineItem{
		{ID: "1", Title: "Keyboard", Price: 50, Quantity: 2},
		{ID: "2", Title: "Mouse", Price: 30, Quantity: 1},
	}

	b := Compute(items, 0)

	assert.Equal(t, 130.0, b.Subtotal)
	assert.Equal(t, 0.0, b.Shipping, "subtotal above threshold ships free")
	assert.InDelta(t, 11.7, b.Tax, 1e-9)
	assert.InDelta(t, 141.7, b.Total, 1e-9)
}

func TestCompute_TotalIsExactSum(t *testing.T) {
	items := []domain.LineItem{
		{ID: "1", Price: 19.99, Quantity: 3},
		{ID: "2", Price: 7.49, Quantity: 2},
	}

	b := Compute(items, 12.5)

	// No hidden rounding: the identity must hold exactly, not within a delta.
	assert.Equal(t, b.Subtotal+b.Shipping+b.Tax-b.Discount, b.Total)
}

func TestCompute_ShippingBoundary(t *testing.T) {
	atThreshold := Compute([]domain.LineItem{{ID: "1", Price: 100, Quantity: 1}}, 0)
	assert.Equal(t, FlatShippingCost, atThreshold.Shipping, "subtotal exactly at the threshold still pays shipping")

	justAbove := Compute([]domain.LineItem{{ID: "1", Price: 100.01, Quantity: 1}}, 0)
	assert.Equal(t, 0.0, justAbove.Shipping)
}

func TestCompute_UsesDiscountedPrice(t *testing.T) {
	discounted := 40.0
	items := []domain.LineItem{
		{ID: "1", Price: 50, DiscountedPrice: &discounted, Quantity: 2},
	}

	b := Compute(items, 0)

	assert.Equal(t, 80.0, b.Subtotal)
}

func TestCompute_Idempotent(t *testing.T) {
	items := []domain.LineItem{
		{ID: "1", Price: 33.33, Quantity: 3},
		{ID: "2", Price: 0.01, Quantity: 7},
	}

	first := Compute(items, 5)
	second := Compute(items, 5)

	require.Equal(t, first, second)
}

func TestCompute_NoFloorOnNegativeTotal(t *testing.T) {
	items := []domain.LineItem{{ID: "1", Price: 10, Quantity: 1}}

	b := Compute(items, 1000)

	assert.Negative(t, b.Total, "a discount larger than subtotal plus fees is not clamped")
}

func TestCompute_EmptyCart(t *testing.T) {
	b := Compute(nil, 0)

	assert.Equal(t, 0.0, b.Subtotal)
	assert.Equal(t, FlatShippingCost, b.Shipping)
	assert.Equal(t, 0.0, b.Tax)
	assert.Equal(t, FlatShippingCost, b.Total)
}
