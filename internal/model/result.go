package model

import "time"

// TargetMode says how the target breakeven occupancy was resolved.
type TargetMode string

const (
	TargetModeStatic TargetMode = "static"
	TargetModeSmart  TargetMode = "smart"
)

// OverrideInfo is the audit view of an applied manual override, kept
// alongside the calculated price for side-by-side display.
type OverrideInfo struct {
	OverriddenBy    string    `json:"overridden_by"`
	OverriddenAt    time.Time `json:"overridden_at"`
	Reason          string    `json:"reason"`
	OverriddenPrice float64   `json:"overridden_price"`
	OriginalPrice   float64   `json:"original_price"`
}

// PricingResult is the assembled output for one location at one anchor date.
// Immutable once produced.
type PricingResult struct {
	Location   string    `json:"location"`
	AnchorDate time.Time `json:"anchor_date"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`

	OccupancyPct           float64    `json:"occupancy_pct"`
	ActualBreakevenPct     float64    `json:"actual_breakeven_occupancy_pct"`
	TargetBreakevenPct     float64    `json:"target_breakeven_occupancy_pct"`
	TargetMode             TargetMode `json:"target_mode"`
	SoldPricePerSeatActual float64    `json:"sold_price_per_seat_actual"`

	DynamicMultiplier float64 `json:"dynamic_multiplier"`
	BreakevenPrice    float64 `json:"breakeven_price"`
	BasePrice         float64 `json:"base_price"`
	CalculatedPrice   float64 `json:"calculated_price"`
	Clamped           bool    `json:"clamped"`
	BottomPrice       float64 `json:"bottom_price"`

	// RecommendedPrice is the displayed price: the override price when an
	// override applies, otherwise CalculatedPrice.
	RecommendedPrice float64       `json:"recommended_price"`
	IsOverride       bool          `json:"is_override"`
	Override         *OverrideInfo `json:"manual_override,omitempty"`

	IsLosingMoney bool `json:"is_losing_money"`

	// PublishedPrice and Reasoning are injected by collaborators; the core
	// never computes them.
	PublishedPrice *float64 `json:"published_price,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
}

// Skip records a location that could not be priced, with the reason it was
// excluded. The batch reports one Skip or one PricingResult per input.
type Skip struct {
	Location string `json:"location"`
	Reason   string `json:"reason"`
}
