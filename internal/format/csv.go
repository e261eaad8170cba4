package format

import (
	"encoding/csv"
	"os"
	"strconv"

	"office-pricing/internal/model"
)

// WriteResultsCSV writes one row per priced location. This is the primary
// artifact for "what the run recommended" when the CLI is scripted.
func WriteResultsCSV(path string, results []model.PricingResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"location",
		"year",
		"month",
		"occupancy_pct",
		"actual_breakeven_occupancy_pct",
		"target_breakeven_occupancy_pct",
		"target_mode",
		"sold_price_per_seat_actual",
		"dynamic_multiplier",
		"breakeven_price",
		"calculated_price",
		"recommended_price",
		"bottom_price",
		"is_override",
		"is_losing_money",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Location,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			fmtFloat(r.OccupancyPct),
			fmtFloat(r.ActualBreakevenPct),
			fmtFloat(r.TargetBreakevenPct),
			string(r.TargetMode),
			fmtFloat(r.SoldPricePerSeatActual),
			fmtFloat(r.DynamicMultiplier),
			fmtFloat(r.BreakevenPrice),
			fmtFloat(r.CalculatedPrice),
			fmtFloat(r.RecommendedPrice),
			fmtFloat(r.BottomPrice),
			strconv.FormatBool(r.IsOverride),
			strconv.FormatBool(r.IsLosingMoney),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
