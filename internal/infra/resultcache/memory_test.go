package resultcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
)

func TestMemoryRoundTrip(t *testing.T) {
	cache := NewMemory()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	want := analysis.Result{SkinType: analysis.SkinTypeDry, OverallHealth: 55}
	require.NoError(t, cache.Save(ctx, "k", want, time.Minute))

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestMemoryExpiry(t *testing.T) {
	cache := NewMemory()
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "k", analysis.Result{}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
