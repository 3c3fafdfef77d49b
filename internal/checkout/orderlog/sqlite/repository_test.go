package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/checkout/internal/checkout/orderlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func entry(orderID, email string, at time.Time) *orderlog.Entry {
	return &orderlog.Entry{
		OrderID:     orderID,
		SessionID:   "sess-1",
		Email:       email,
		TotalAmount: 141.7,
		Summary:     `{"orderId":"` + orderID + `"}`,
		TraceID:     "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:      "00f067aa0ba902b7",
		CreatedAt:   at,
	}
}

func TestSaveAndGetByOrderID(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, entry("ORD-1", "john@example.com", at)))

	got, err := repo.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.OrderID)
	assert.Equal(t, "john@example.com", got.Email)
	assert.Equal(t, 141.7, got.TotalAmount)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", got.TraceID)
	assert.True(t, got.CreatedAt.Equal(at))
}

func TestGetByOrderID_NotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetByOrderID(context.Background(), "ORD-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_DuplicateOrderIDRejected(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, entry("ORD-1", "john@example.com", at)))
	assert.Error(t, repo.Save(ctx, entry("ORD-1", "john@example.com", at)), "orders are immutable, no second row per id")
}

func TestListByEmail_NewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, entry("ORD-1", "john@example.com", base)))
	require.NoError(t, repo.Save(ctx, entry("ORD-2", "john@example.com", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, entry("ORD-3", "jane@example.com", base.Add(2*time.Hour))))

	got, err := repo.ListByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-2", got[0].OrderID)
	assert.Equal(t, "ORD-1", got[1].OrderID)

	empty, err := repo.ListByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
