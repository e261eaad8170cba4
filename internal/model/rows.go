package model

import "time"

// AnalyticsExportResponse matches the JSON shape returned by the analytics
// provider's export endpoints (and our cached copies of them).
//
// Example:
//
//	{
//	  "status_code": 200,
//	  "rows": [ ... ]
//	}
type AnalyticsExportResponse struct {
	StatusCode int                 `json:"status_code"`
	Monthly    []MonthlyExpenseRow `json:"monthly,omitempty"`
	Daily      []DailyOccupancyRow `json:"daily,omitempty"`
}

// MonthlyExpenseRow is one row of the monthly P&L export, per building per
// calendar month. Monetary amounts arrive as the provider reports them and
// may be negative (expenses booked as debits); callers normalize sign.
type MonthlyExpenseRow struct {
	BuildingName     string  `json:"building_name" db:"building_name"`
	Year             int     `json:"year" db:"year"`
	Month            int     `json:"month" db:"month"`
	TotalExpense     float64 `json:"total_expense" db:"total_expense"`
	TotalSeats       int     `json:"total_seats" db:"total_seats"`
	SoldPricePerSeat float64 `json:"sold_price_per_seat" db:"sold_price_per_seat"`
}

// DailyOccupancyRow is one row of the daily occupancy export, per building
// per calendar day. OccupancyPct is a percentage in [0,100].
type DailyOccupancyRow struct {
	BuildingName string    `json:"building_name" db:"building_name"`
	Date         time.Time `json:"date" db:"date"`
	OccupancyPct float64   `json:"occupancy_pct" db:"occupancy_pct"`
}

// PublishedPrice is the externally published per-seat price for a building,
// valid from the given year/month until superseded.
type PublishedPrice struct {
	BuildingName string  `json:"building_name" db:"building_name"`
	Year         int     `json:"year" db:"year"`
	Month        int     `json:"month" db:"month"`
	Price        float64 `json:"price" db:"price"`
}
