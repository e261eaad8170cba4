package pricing

import (
	"math"

	"github.com/rs/zerolog/log"

	"office-pricing/internal/model"
)

// TargetPolicy decides how large a smart-target reduction to take within the
// configured range, given how far occupancy sits from breakeven. distance is
// in percentage points and always >= 0; the returned reduction must lie
// within [rng.Lo, rng.Hi].
type TargetPolicy interface {
	Name() string
	Reduction(profitable bool, distance float64, rng model.SmartRange) float64
}

// LinearPolicy scales the reduction linearly with distance, saturating at
// SaturationPts percentage points. Zero distance takes the low end of the
// range, SaturationPts or more takes the high end.
type LinearPolicy struct {
	// SaturationPts defaults to 25 when zero.
	SaturationPts float64
}

func (LinearPolicy) Name() string { return "linear" }

func (p LinearPolicy) Reduction(_ bool, distance float64, rng model.SmartRange) float64 {
	sat := p.SaturationPts
	if sat <= 0 {
		sat = 25
	}
	frac := distance / sat
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return rng.Lo + (rng.Hi-rng.Lo)*frac
}

// StepPolicy mirrors the analyst bands used before the scaling was made
// configurable: three fixed steps keyed off the distance from breakeven.
type StepPolicy struct{}

func (StepPolicy) Name() string { return "step" }

func (StepPolicy) Reduction(profitable bool, distance float64, rng model.SmartRange) float64 {
	mid := (rng.Lo + rng.Hi) / 2
	if profitable {
		switch {
		case distance <= 10:
			return rng.Lo
		case distance <= 25:
			return mid
		default:
			return rng.Hi
		}
	}
	switch {
	case distance <= 15:
		return rng.Lo
	case distance <= 25:
		return mid
	default:
		return rng.Hi
	}
}

// PolicyByName resolves a configured policy name, defaulting to linear.
func PolicyByName(name string) TargetPolicy {
	if name == "step" {
		return StepPolicy{}
	}
	return LinearPolicy{}
}

// ResolveTarget resolves the target breakeven occupancy for a location.
//
// Static mode returns the configured static target. Smart mode classifies
// the location by comparing occupancy against the actual breakeven, draws a
// reduction from the matching range via the policy, and subtracts it from
// the static target. Any missing or non-finite input degrades to the static
// target rather than failing the location.
func ResolveTarget(rules model.PricingRules, snap model.LocationSnapshot, actualBreakevenPct float64, policy TargetPolicy) (float64, model.TargetMode) {
	static := rules.StaticTargetBreakevenPct
	if !rules.SmartTargetEnabled {
		return static, model.TargetModeStatic
	}
	if policy == nil {
		policy = LinearPolicy{}
	}
	if !finite(actualBreakevenPct) || !finite(snap.AvgOccupancy7d) || actualBreakevenPct <= 0 {
		log.Debug().Str("location", snap.Name).Msg("smart target inputs unusable, using static target")
		return static, model.TargetModeStatic
	}

	profitable := snap.AvgOccupancy7d >= actualBreakevenPct
	distance := math.Abs(snap.AvgOccupancy7d - actualBreakevenPct)

	rng := rules.SmartLosingRange
	if profitable {
		rng = rules.SmartProfitableRange
	}
	reduction := clampFloat(policy.Reduction(profitable, distance, rng), rng.Lo, rng.Hi)

	target := static - reduction
	if target > 100 {
		target = 100
	}
	if target <= 0 {
		// A reduction that wipes out the target is a configuration smell;
		// degrade to static instead of pricing against nothing.
		log.Debug().Str("location", snap.Name).Float64("target", target).
			Msg("smart target non-positive, using static target")
		return static, model.TargetModeStatic
	}
	return target, model.TargetModeSmart
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
