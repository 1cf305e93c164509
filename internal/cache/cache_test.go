package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, "k", payload{Name: "a", Count: 2}, 0))

	var got payload
	hit, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestMemoryMiss(t *testing.T) {
	m := NewMemory(time.Minute)

	var got payload
	hit, err := m.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, "k", payload{Name: "a"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got payload
	hit, _ := m.Get(ctx, "k", &got)
	assert.False(t, hit, "expired entries must read as misses")
}

func TestMemoryDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, "bundles:list:1", payload{}, 0))
	require.NoError(t, m.Set(ctx, "bundles:list:2", payload{}, 0))
	require.NoError(t, m.Set(ctx, "products:list:1", payload{}, 0))

	require.NoError(t, m.DeleteByPrefix(ctx, "bundles:list:"))

	var got payload
	hit, _ := m.Get(ctx, "bundles:list:1", &got)
	assert.False(t, hit)
	hit, _ = m.Get(ctx, "products:list:1", &got)
	assert.True(t, hit)
	assert.Equal(t, 1, m.Size())
}
