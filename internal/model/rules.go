package model

import (
	"errors"
	"fmt"
	"math"
)

// OccupancyTier maps an occupancy band to a price multiplier.
// Bands are half-open [Lower, Upper); an occupancy of exactly 100 falls in
// the final tier.
type OccupancyTier struct {
	Lower      float64 `yaml:"lower" json:"lower"`
	Upper      float64 `yaml:"upper" json:"upper"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// SmartRange is a percentage-point reduction interval applied to the static
// target, e.g. 3–7 for profitable locations.
type SmartRange struct {
	Lo float64 `yaml:"lo" json:"lo"`
	Hi float64 `yaml:"hi" json:"hi"`
}

// PricingRules defines the analyst-configured pricing parameters for one
// location. Read-only to the calculation core; an immutable value is passed
// per run.
type PricingRules struct {
	Location string

	StaticTargetBreakevenPct float64
	SmartTargetEnabled       bool
	SmartProfitableRange     SmartRange
	SmartLosingRange         SmartRange

	MarginOfSafetyMultiplier float64
	MinPrice                 float64
	MaxPrice                 float64

	OccupancyTiers []OccupancyTier

	// TargetPolicy names the smart-target scaling policy ("linear" or
	// "step"). Empty means linear.
	TargetPolicy string
}

// DefaultOccupancyTiers is the safe fallback tier set used when a location's
// configured tiers are malformed.
func DefaultOccupancyTiers() []OccupancyTier {
	return []OccupancyTier{
		{Lower: 0, Upper: 20, Multiplier: 0.8},
		{Lower: 20, Upper: 40, Multiplier: 0.9},
		{Lower: 40, Upper: 60, Multiplier: 1.0},
		{Lower: 60, Upper: 80, Multiplier: 1.05},
		{Lower: 80, Upper: 100, Multiplier: 1.1},
	}
}

func (r PricingRules) Validate() error {
	if r.StaticTargetBreakevenPct <= 0 || r.StaticTargetBreakevenPct > 100 {
		return errors.New("static target breakeven must be in (0, 100]")
	}
	if r.MarginOfSafetyMultiplier <= 0 {
		return errors.New("margin of safety multiplier must be > 0")
	}
	if r.MinPrice < 0 || r.MaxPrice < 0 {
		return errors.New("price bounds must be >= 0")
	}
	// MaxPrice of zero means unbounded.
	if r.MaxPrice > 0 && r.MinPrice > r.MaxPrice {
		return fmt.Errorf("min_price %.0f exceeds max_price %.0f", r.MinPrice, r.MaxPrice)
	}
	if err := validateRange(r.SmartProfitableRange); err != nil {
		return fmt.Errorf("profitable range: %w", err)
	}
	if err := validateRange(r.SmartLosingRange); err != nil {
		return fmt.Errorf("losing range: %w", err)
	}
	return ValidateTiers(r.OccupancyTiers)
}

func validateRange(rng SmartRange) error {
	if rng.Lo < 0 || rng.Hi < rng.Lo {
		return fmt.Errorf("invalid interval %.1f–%.1f", rng.Lo, rng.Hi)
	}
	return nil
}

// ValidateTiers checks that tiers are ordered, contiguous, and cover [0,100]
// exactly.
func ValidateTiers(tiers []OccupancyTier) error {
	if len(tiers) == 0 {
		return errors.New("no occupancy tiers")
	}
	if tiers[0].Lower != 0 {
		return fmt.Errorf("tiers must start at 0, got %.1f", tiers[0].Lower)
	}
	prev := tiers[0].Lower
	for i, t := range tiers {
		if t.Upper <= t.Lower {
			return fmt.Errorf("tier %d has empty band %.1f–%.1f", i, t.Lower, t.Upper)
		}
		if t.Lower != prev {
			return fmt.Errorf("gap before tier %d at %.1f", i, t.Lower)
		}
		if t.Multiplier <= 0 || math.IsNaN(t.Multiplier) {
			return fmt.Errorf("tier %d has invalid multiplier %v", i, t.Multiplier)
		}
		prev = t.Upper
	}
	if prev != 100 {
		return fmt.Errorf("tiers must end at 100, got %.1f", prev)
	}
	return nil
}

// TierFor selects the tier containing the occupancy percentage. Bands are
// half-open except the final tier, which includes its upper bound so 100
// resolves.
func TierFor(tiers []OccupancyTier, occupancyPct float64) (OccupancyTier, error) {
	for i, t := range tiers {
		last := i == len(tiers)-1
		if occupancyPct >= t.Lower && (occupancyPct < t.Upper || (last && occupancyPct == t.Upper)) {
			return t, nil
		}
	}
	return OccupancyTier{}, fmt.Errorf("no tier covers occupancy %.2f", occupancyPct)
}
