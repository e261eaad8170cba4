package model

import (
	"errors"
	"time"
)

// LocationSnapshot is the calculation-ready record for one location at one
// anchor date: the join of the 3-month expense window and the 7-day
// occupancy window.
//
// A snapshot is usable only if Validate returns nil; the merger never emits
// an invalid snapshot, it reports a skip instead.
type LocationSnapshot struct {
	Name       string
	AnchorDate time.Time

	// TotalSeats is the private-office seat count. Always > 0 for emitted
	// snapshots; zero-seat locations are excluded before the join.
	TotalSeats int

	// AvgExpense3Mo is the mean of the per-month expense totals over the
	// months available inside the window (absolute value, months with no
	// data excluded rather than counted as zero).
	AvgExpense3Mo float64

	// AvgOccupancy7d is the mean of the daily occupancy readings over the
	// 7 days before the anchor date, in [0,100].
	AvgOccupancy7d float64

	// SoldPricePerSeatActual is the most recent known sold price per seat.
	SoldPricePerSeatActual float64

	// ExpenseMonths is how many months actually contributed to the average.
	ExpenseMonths int
	// OccupancyDays is how many daily readings contributed to the average.
	OccupancyDays int
}

func (s LocationSnapshot) Validate() error {
	if s.Name == "" {
		return errors.New("name is empty")
	}
	if s.TotalSeats <= 0 {
		return errors.New("total seats must be > 0")
	}
	if s.AvgExpense3Mo < 0 {
		return errors.New("average expense must be >= 0")
	}
	if s.AvgOccupancy7d < 0 || s.AvgOccupancy7d > 100 {
		return errors.New("occupancy must be within [0,100]")
	}
	if s.ExpenseMonths == 0 {
		return errors.New("no expense months in window")
	}
	if s.OccupancyDays == 0 {
		return errors.New("no occupancy readings in window")
	}
	return nil
}
