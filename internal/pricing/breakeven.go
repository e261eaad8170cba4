package pricing

import (
	"errors"
	"math"

	"office-pricing/internal/model"
)

// ActualBreakevenOccupancy derives the occupancy percentage at which revenue
// covers cost, from the expense average, the sold price per seat, and the
// seat count:
//
//	avgExpense3Mo / soldPrice / totalSeats * 100
func ActualBreakevenOccupancy(snap model.LocationSnapshot) (float64, error) {
	if snap.SoldPricePerSeatActual == 0 {
		return 0, invalidInput(snap.Name, "breakeven occupancy", errors.New("sold price per seat is zero"))
	}
	pct := snap.AvgExpense3Mo / snap.SoldPricePerSeatActual / float64(snap.TotalSeats) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, invalidInput(snap.Name, "breakeven occupancy", errors.New("result is non-finite"))
	}
	return pct, nil
}

// BreakevenPricePerSeat is the seat price that breaks even at the resolved
// target occupancy. Note this uses the target, not the actual breakeven
// occupancy; the actual figure is diagnostic only.
func BreakevenPricePerSeat(snap model.LocationSnapshot, targetPct float64) (float64, error) {
	if targetPct <= 0 {
		return 0, invalidInput(snap.Name, "breakeven price", errors.New("target breakeven occupancy must be > 0"))
	}
	price := snap.AvgExpense3Mo / float64(snap.TotalSeats) / (targetPct / 100)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, invalidInput(snap.Name, "breakeven price", errors.New("result is non-finite"))
	}
	return price, nil
}
