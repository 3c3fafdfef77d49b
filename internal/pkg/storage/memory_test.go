package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Name string `json:"name"`
	Step int    `json:"step"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", draft{Name: "John", Step: 2}))

	var got draft
	ok, err := s.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, draft{Name: "John", Step: 2}, got)
}

func TestMemoryStore_MissIsNotAnError(t *testing.T) {
	var got draft
	ok, err := NewMemoryStore().Get(context.Background(), "absent", &got)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", 1))

	require.NoError(t, s.Delete(ctx, "k"))

	var got int
	ok, err := s.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_CorruptValueSurfacesDecodeError(t *testing.T) {
	s := NewMemoryStore()
	s.SetRaw("k", []byte("{broken"))

	var got draft
	_, err := s.Get(context.Background(), "k", &got)
	assert.Error(t, err)
}
