package pricing

import "office-pricing/internal/model"

// OverrideSource looks up the manual override log for a location and period.
// Implementations return every matching entry; selection of the winner
// happens here so audit history stays append-only.
type OverrideSource interface {
	OverridesFor(location string, year, month int) ([]model.Override, error)
}

// ResolveOverride picks the active override, if any, and folds it into the
// result fields: the displayed price becomes the override price while the
// calculated price is kept for side-by-side display.
func ResolveOverride(src OverrideSource, location string, year, month int, calculatedPrice float64) (displayed float64, info *model.OverrideInfo, err error) {
	if src == nil {
		return calculatedPrice, nil, nil
	}
	candidates, err := src.OverridesFor(location, year, month)
	if err != nil {
		return calculatedPrice, nil, err
	}
	winner, ok := model.LatestOverride(candidates)
	if !ok {
		return calculatedPrice, nil, nil
	}
	return winner.OverridePrice, &model.OverrideInfo{
		OverriddenBy:    winner.AnalystName,
		OverriddenAt:    winner.CreatedAt,
		Reason:          winner.Reason,
		OverriddenPrice: winner.OverridePrice,
		OriginalPrice:   calculatedPrice,
	}, nil
}
