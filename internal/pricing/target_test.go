package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"office-pricing/internal/model"
)

func smartRules() model.PricingRules {
	return model.PricingRules{
		Location:                 "Downtown Hub",
		StaticTargetBreakevenPct: 70,
		SmartTargetEnabled:       true,
		SmartProfitableRange:     model.SmartRange{Lo: 3, Hi: 7},
		SmartLosingRange:         model.SmartRange{Lo: 3, Hi: 10},
		MarginOfSafetyMultiplier: 1.5,
		OccupancyTiers:           model.DefaultOccupancyTiers(),
	}
}

func TestResolveTargetStaticMode(t *testing.T) {
	rules := smartRules()
	rules.SmartTargetEnabled = false

	target, mode := ResolveTarget(rules, testSnapshot(), 30, LinearPolicy{})
	assert.Equal(t, 70.0, target)
	assert.Equal(t, model.TargetModeStatic, mode)
}

func TestResolveTargetProfitableStaysInRange(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	for _, occ := range []float64{30, 35, 50, 80, 100} {
		snap.AvgOccupancy7d = occ
		target, mode := ResolveTarget(rules, snap, 30, LinearPolicy{})
		assert.Equal(t, model.TargetModeSmart, mode)
		reduction := rules.StaticTargetBreakevenPct - target
		assert.GreaterOrEqual(t, reduction, rules.SmartProfitableRange.Lo, "occ %.0f", occ)
		assert.LessOrEqual(t, reduction, rules.SmartProfitableRange.Hi, "occ %.0f", occ)
	}
}

func TestResolveTargetLosingStaysInRange(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	for _, occ := range []float64{0, 10, 25, 29.9} {
		snap.AvgOccupancy7d = occ
		target, mode := ResolveTarget(rules, snap, 30, LinearPolicy{})
		assert.Equal(t, model.TargetModeSmart, mode)
		reduction := rules.StaticTargetBreakevenPct - target
		assert.GreaterOrEqual(t, reduction, rules.SmartLosingRange.Lo, "occ %.0f", occ)
		assert.LessOrEqual(t, reduction, rules.SmartLosingRange.Hi, "occ %.0f", occ)
	}
}

func TestResolveTargetFallsBackOnUnusableInputs(t *testing.T) {
	rules := smartRules()
	snap := testSnapshot()

	target, mode := ResolveTarget(rules, snap, math.NaN(), LinearPolicy{})
	assert.Equal(t, 70.0, target)
	assert.Equal(t, model.TargetModeStatic, mode)

	target, mode = ResolveTarget(rules, snap, 0, LinearPolicy{})
	assert.Equal(t, 70.0, target)
	assert.Equal(t, model.TargetModeStatic, mode)
}

func TestResolveTargetFallsBackWhenReductionWipesTarget(t *testing.T) {
	rules := smartRules()
	rules.StaticTargetBreakevenPct = 5
	rules.SmartProfitableRange = model.SmartRange{Lo: 6, Hi: 9}

	target, mode := ResolveTarget(rules, testSnapshot(), 30, LinearPolicy{})
	assert.Equal(t, 5.0, target)
	assert.Equal(t, model.TargetModeStatic, mode)
}

func TestLinearPolicyScalesWithDistance(t *testing.T) {
	p := LinearPolicy{}
	rng := model.SmartRange{Lo: 3, Hi: 7}

	assert.InDelta(t, 3, p.Reduction(true, 0, rng), 1e-9)
	assert.InDelta(t, 5, p.Reduction(true, 12.5, rng), 1e-9)
	assert.InDelta(t, 7, p.Reduction(true, 25, rng), 1e-9)
	// Saturates beyond 25 points.
	assert.InDelta(t, 7, p.Reduction(true, 60, rng), 1e-9)
}

func TestStepPolicyBands(t *testing.T) {
	p := StepPolicy{}
	prof := model.SmartRange{Lo: 3, Hi: 7}
	losing := model.SmartRange{Lo: 3, Hi: 10}

	tests := []struct {
		profitable bool
		distance   float64
		rng        model.SmartRange
		want       float64
	}{
		{true, 5, prof, 3},
		{true, 10, prof, 3},
		{true, 20, prof, 5},
		{true, 30, prof, 7},
		{false, 10, losing, 3},
		{false, 15, losing, 3},
		{false, 20, losing, 6.5},
		{false, 40, losing, 10},
	}
	for _, tt := range tests {
		got := p.Reduction(tt.profitable, tt.distance, tt.rng)
		assert.InDelta(t, tt.want, got, 1e-9, "profitable=%v distance=%.0f", tt.profitable, tt.distance)
	}
}

func TestPolicyByName(t *testing.T) {
	assert.Equal(t, "step", PolicyByName("step").Name())
	assert.Equal(t, "linear", PolicyByName("linear").Name())
	assert.Equal(t, "linear", PolicyByName("").Name())
	assert.Equal(t, "linear", PolicyByName("bogus").Name())
}
