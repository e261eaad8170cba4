package format

import (
	"fmt"
	"strings"

	"office-pricing/internal/model"
)

// TemplateReasoner produces deterministic explanation text from the result
// fields. It stands in for the external reasoning generator; the engine
// accepts any implementation.
type TemplateReasoner struct{}

func (TemplateReasoner) Reasoning(res model.PricingResult) string {
	var parts []string
	if res.IsLosingMoney {
		parts = append(parts, fmt.Sprintf("occupancy %.1f%% is below the actual breakeven of %.1f%%, so the location is currently losing money",
			res.OccupancyPct, res.ActualBreakevenPct))
	} else {
		parts = append(parts, fmt.Sprintf("occupancy %.1f%% covers the actual breakeven of %.1f%%",
			res.OccupancyPct, res.ActualBreakevenPct))
	}
	if res.TargetMode == model.TargetModeSmart {
		parts = append(parts, fmt.Sprintf("the smart target of %.1f%% tightens the static goal based on current profitability",
			res.TargetBreakevenPct))
	} else {
		parts = append(parts, fmt.Sprintf("pricing targets the configured %.1f%% breakeven occupancy", res.TargetBreakevenPct))
	}
	parts = append(parts, fmt.Sprintf("the %.2fx occupancy multiplier and margin of safety land the recommendation at %s",
		res.DynamicMultiplier, Price(res.RecommendedPrice)))
	if res.Clamped {
		parts = append(parts, "the raw recommendation fell outside the configured bounds and was clamped")
	}
	if res.IsOverride {
		parts = append(parts, fmt.Sprintf("an analyst override supersedes the calculated price of %s", Price(res.CalculatedPrice)))
	}
	return strings.Join(parts, "; ") + "."
}
