package pricing

import (
	"math"

	"office-pricing/internal/model"
)

// BottomPriceStep is the rounding unit for the bottom price reference.
const BottomPriceStep = 50000

// Recommendation holds the price derivation for one location before
// overrides are applied.
type Recommendation struct {
	TierMultiplier  float64
	BreakevenPrice  float64
	BasePrice       float64
	CalculatedPrice float64
	Clamped         bool
	BottomPrice     float64
	IsLosingMoney   bool
}

// Recommend applies the occupancy-tier multiplier, the margin of safety, and
// the business bounds to the breakeven price.
func Recommend(rules model.PricingRules, snap model.LocationSnapshot, breakevenPrice, actualBreakevenPct float64) (Recommendation, error) {
	tier, err := model.TierFor(rules.OccupancyTiers, snap.AvgOccupancy7d)
	if err != nil {
		return Recommendation{}, configError(snap.Name, "tier selection", err)
	}

	base := breakevenPrice * tier.Multiplier
	calculated := base * rules.MarginOfSafetyMultiplier

	clamped := false
	if calculated < rules.MinPrice {
		calculated = rules.MinPrice
		clamped = true
	} else if rules.MaxPrice > 0 && calculated > rules.MaxPrice {
		calculated = rules.MaxPrice
		clamped = true
	}

	return Recommendation{
		TierMultiplier:  tier.Multiplier,
		BreakevenPrice:  breakevenPrice,
		BasePrice:       base,
		CalculatedPrice: calculated,
		Clamped:         clamped,
		BottomPrice:     BottomPrice(breakevenPrice),
		IsLosingMoney:   snap.AvgOccupancy7d < actualBreakevenPct,
	}, nil
}

// BottomPrice rounds the breakeven price up to the nearest step. Exact
// multiples are left unchanged, so the operation is idempotent.
func BottomPrice(breakevenPrice float64) float64 {
	return math.Ceil(breakevenPrice/BottomPriceStep) * BottomPriceStep
}
