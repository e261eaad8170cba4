package data

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"office-pricing/internal/model"
	"office-pricing/internal/pricing"
)

// holdingName marks the non-sellable aggregate row in the provider exports.
// Compared case-insensitively; everything else joins case-sensitively.
const holdingName = "holding"

// MergeResult is the merger output: calculation-ready snapshots plus one
// skip record per location that had data but could not produce a usable
// snapshot.
type MergeResult struct {
	Snapshots []model.LocationSnapshot
	Skips     []model.Skip
}

// BuildSnapshots joins the monthly expense window with the daily occupancy
// window per location for the anchor date.
//
// Expense window: the anchor month and the two calendar months before it;
// missing months are excluded from the average, not zeroed. Occupancy
// window: the 7 calendar days immediately before the anchor date, anchor
// excluded. The join key is the exact building name; locations present in
// only one source are excluded, as are "Holding" and zero-seat locations.
func BuildSnapshots(anchor time.Time, monthly []model.MonthlyExpenseRow, daily []model.DailyOccupancyRow) MergeResult {
	months := windowMonths(anchor)
	dayFrom := anchor.AddDate(0, 0, -7)

	expenseByLoc := map[string][]model.MonthlyExpenseRow{}
	for _, row := range monthly {
		name := strings.TrimSpace(row.BuildingName)
		if name == "" || strings.EqualFold(name, holdingName) {
			continue
		}
		if !inMonths(months, row.Year, row.Month) {
			continue
		}
		expenseByLoc[name] = append(expenseByLoc[name], row)
	}

	occupancyByLoc := map[string][]float64{}
	for _, row := range daily {
		name := strings.TrimSpace(row.BuildingName)
		if name == "" || strings.EqualFold(name, holdingName) {
			continue
		}
		d := row.Date
		if d.Before(dayFrom) || !d.Before(anchor) {
			continue
		}
		occupancyByLoc[name] = append(occupancyByLoc[name], pricing.ParsePct(row.OccupancyPct, 0))
	}

	var out MergeResult
	names := make([]string, 0, len(expenseByLoc))
	for name := range expenseByLoc {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rows := expenseByLoc[name]
		readings, inBoth := occupancyByLoc[name]
		if !inBoth {
			// Present only in the expense source; excluded from the run.
			continue
		}

		seats := latestSeats(rows)
		if seats <= 0 {
			out.Skips = append(out.Skips, model.Skip{Location: name, Reason: "total seats is zero"})
			continue
		}

		snap, err := buildSnapshot(name, anchor, rows, readings, seats)
		if err != nil {
			out.Skips = append(out.Skips, model.Skip{Location: name, Reason: err.Error()})
			continue
		}
		out.Snapshots = append(out.Snapshots, snap)
	}
	return out
}

func buildSnapshot(name string, anchor time.Time, rows []model.MonthlyExpenseRow, readings []float64, seats int) (model.LocationSnapshot, error) {
	// One value per calendar month; duplicate provider rows collapse to the
	// first seen.
	byMonth := map[[2]int]float64{}
	for _, row := range rows {
		key := [2]int{row.Year, row.Month}
		if _, seen := byMonth[key]; !seen {
			byMonth[key] = pricing.ParseAbs(row.TotalExpense, 0)
		}
	}
	if len(byMonth) == 0 {
		return model.LocationSnapshot{}, fmt.Errorf("no expense months in window")
	}
	var expenseSum float64
	for _, v := range byMonth {
		expenseSum += v
	}
	avgExpense := expenseSum / float64(len(byMonth))

	if len(readings) == 0 {
		return model.LocationSnapshot{}, fmt.Errorf("no occupancy readings in window")
	}
	var occSum float64
	for _, v := range readings {
		occSum += v
	}
	avgOcc := occSum / float64(len(readings))
	if avgOcc > 100 {
		avgOcc = 100
	}

	soldPrice := latestSoldPrice(rows)
	if soldPrice == 0 {
		return model.LocationSnapshot{}, fmt.Errorf("no sold price per seat in window")
	}

	return model.LocationSnapshot{
		Name:                   name,
		AnchorDate:             anchor,
		TotalSeats:             seats,
		AvgExpense3Mo:          avgExpense,
		AvgOccupancy7d:         avgOcc,
		SoldPricePerSeatActual: soldPrice,
		ExpenseMonths:          len(byMonth),
		OccupancyDays:          len(readings),
	}, nil
}

// windowMonths returns the anchor month and the two before it as {year,month}
// pairs.
func windowMonths(anchor time.Time) [3][2]int {
	var out [3][2]int
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m := first.AddDate(0, -i, 0)
		out[i] = [2]int{m.Year(), int(m.Month())}
	}
	return out
}

func inMonths(months [3][2]int, year, month int) bool {
	for _, ym := range months {
		if ym[0] == year && ym[1] == month {
			return true
		}
	}
	return false
}

// latestSeats takes the seat count from the most recent window month that
// reports one.
func latestSeats(rows []model.MonthlyExpenseRow) int {
	sorted := sortRowsDesc(rows)
	for _, row := range sorted {
		if row.TotalSeats > 0 {
			return row.TotalSeats
		}
	}
	return 0
}

// latestSoldPrice takes the most recent non-zero sold price in the window.
func latestSoldPrice(rows []model.MonthlyExpenseRow) float64 {
	sorted := sortRowsDesc(rows)
	for _, row := range sorted {
		if p := pricing.ParseAbs(row.SoldPricePerSeat, 0); p > 0 {
			return p
		}
	}
	return 0
}

func sortRowsDesc(rows []model.MonthlyExpenseRow) []model.MonthlyExpenseRow {
	sorted := make([]model.MonthlyExpenseRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year > sorted[j].Year
		}
		return sorted[i].Month > sorted[j].Month
	})
	return sorted
}
