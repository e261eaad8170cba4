package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendAppliesTierAndMargin(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot() // occupancy 55 -> tier 40-60, multiplier 1.0

	rec, err := Recommend(rules, snap, 18_000_000, 30)
	require.NoError(t, err)

	assert.Equal(t, 1.0, rec.TierMultiplier)
	assert.InDelta(t, 18_000_000, rec.BasePrice, 1e-6)
	assert.InDelta(t, 27_000_000, rec.CalculatedPrice, 1e-6)
	assert.False(t, rec.Clamped)
	assert.False(t, rec.IsLosingMoney)
}

func TestRecommendTierSelection(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	tests := []struct {
		occ  float64
		want float64
	}{
		{0, 0.8},
		{19.99, 0.8},
		{20, 0.9},
		{40, 1.0},
		{60, 1.05},
		{80, 1.1},
		{100, 1.1},
	}
	for _, tt := range tests {
		snap.AvgOccupancy7d = tt.occ
		rec, err := Recommend(rules, snap, 100, 0.1)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.TierMultiplier, "occupancy %.2f", tt.occ)
	}
}

func TestRecommendClampsToBounds(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	rules.MinPrice = 30_000_000
	rec, err := Recommend(rules, snap, 18_000_000, 30)
	require.NoError(t, err)
	assert.Equal(t, 30_000_000.0, rec.CalculatedPrice)
	assert.True(t, rec.Clamped)

	rules.MinPrice = 0
	rules.MaxPrice = 20_000_000
	rec, err = Recommend(rules, snap, 18_000_000, 30)
	require.NoError(t, err)
	assert.Equal(t, 20_000_000.0, rec.CalculatedPrice)
	assert.True(t, rec.Clamped)

	// MaxPrice zero means unbounded.
	rules.MaxPrice = 0
	rec, err = Recommend(rules, snap, 18_000_000, 30)
	require.NoError(t, err)
	assert.InDelta(t, 27_000_000, rec.CalculatedPrice, 1e-6)
	assert.False(t, rec.Clamped)
}

func TestRecommendLosingMoneyIsStrict(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	snap.AvgOccupancy7d = 29
	rec, err := Recommend(rules, snap, 100, 30)
	require.NoError(t, err)
	assert.True(t, rec.IsLosingMoney)

	// Exactly at breakeven is not losing.
	snap.AvgOccupancy7d = 30
	rec, err = Recommend(rules, snap, 100, 30)
	require.NoError(t, err)
	assert.False(t, rec.IsLosingMoney)
}

func TestBottomPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{25_000, 50_000},
		{50_000, 50_000},
		{50_001, 100_000},
		{75_000, 100_000},
		{125_000, 150_000},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BottomPrice(tt.in), "input %.0f", tt.in)
		// Idempotent: rounding a rounded value changes nothing.
		assert.Equal(t, tt.want, BottomPrice(BottomPrice(tt.in)), "input %.0f", tt.in)
	}
}
