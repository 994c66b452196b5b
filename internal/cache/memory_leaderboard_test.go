package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLeaderboard_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryLeaderboard(time.Minute)
	c.clock = func() time.Time { return now }

	_, ok, _ := c.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleBoard()))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 2)

	// Callers get a copy.
	got[0].Username = "mutated"
	again, _, _ := c.Get(ctx)
	assert.Equal(t, "high", again[0].Username)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}

func TestMemoryLeaderboard_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLeaderboard(time.Hour)

	require.NoError(t, c.Set(ctx, sampleBoard()))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, _ := c.Get(ctx)
	assert.False(t, ok)
}
