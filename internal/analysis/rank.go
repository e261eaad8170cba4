package analysis

import (
	"sort"

	"office-pricing/internal/model"
)

// HealthRank scores a location by its profitability headroom: occupancy
// minus actual breakeven occupancy, in percentage points. Negative margin
// means the location runs below breakeven.
type HealthRank struct {
	Location         string  `json:"location"`
	OccupancyPct     float64 `json:"occupancy_pct"`
	BreakevenPct     float64 `json:"actual_breakeven_occupancy_pct"`
	MarginPts        float64 `json:"margin_pts"`
	RecommendedPrice float64 `json:"recommended_price"`
	IsLosingMoney    bool    `json:"is_losing_money"`
}

// RankByMargin sorts priced locations by profitability headroom, worst
// first, so analysts see the locations that need attention at the top.
func RankByMargin(results []model.PricingResult) []HealthRank {
	out := make([]HealthRank, 0, len(results))
	for _, r := range results {
		out = append(out, HealthRank{
			Location:         r.Location,
			OccupancyPct:     r.OccupancyPct,
			BreakevenPct:     r.ActualBreakevenPct,
			MarginPts:        r.OccupancyPct - r.ActualBreakevenPct,
			RecommendedPrice: r.RecommendedPrice,
			IsLosingMoney:    r.IsLosingMoney,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MarginPts < out[j].MarginPts
	})
	return out
}
