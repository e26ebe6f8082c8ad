package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "ns", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "ns", "k", []byte("value"), time.Minute))

	got, ok, err := m.Get(ctx, "ns", "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemory_NamespacesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "a", "k", []byte("one"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", "k", []byte("two"), time.Minute))

	got, ok, _ := m.Get(ctx, "a", "k")
	require.True(t, ok)
	assert.Equal(t, []byte("one"), got)

	got, ok, _ = m.Get(ctx, "b", "k")
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got)
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	current := time.Now()
	m.now = func() time.Time { return current }

	require.NoError(t, m.Set(ctx, "ns", "k", []byte("value"), 40*time.Minute))

	_, ok, _ := m.Get(ctx, "ns", "k")
	assert.True(t, ok)

	current = current.Add(39 * time.Minute)
	_, ok, _ = m.Get(ctx, "ns", "k")
	assert.True(t, ok, "entry must survive within the TTL window")

	current = current.Add(2 * time.Minute)
	_, ok, _ = m.Get(ctx, "ns", "k")
	assert.False(t, ok, "entry must expire after the TTL window")
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "ns", "k", []byte("value"), time.Minute))
	require.NoError(t, m.Delete(ctx, "ns", "k"))

	_, ok, _ := m.Get(ctx, "ns", "k")
	assert.False(t, ok)
}
