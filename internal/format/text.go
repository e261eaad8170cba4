package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"office-pricing/internal/model"
)

// Text renders a pricing result as the plain-text block used by the CLI and
// the chat webhook. Field order is fixed: latest occupancy, actual breakeven
// occupancy, sold price/seat, target breakeven occupancy (with mode tag),
// dynamic multiplier, published price, recommended price, bottom price.
func Text(res model.PricingResult, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", res.Location)
	fmt.Fprintf(&b, "  Latest Occupancy: %.1f%%\n", res.OccupancyPct)
	fmt.Fprintf(&b, "  Actual Breakeven Occupancy: %.1f%%\n", res.ActualBreakevenPct)
	fmt.Fprintf(&b, "  Sold Price/Seat (Actual): %s\n", PriceRounded(res.SoldPricePerSeatActual, 10000))
	b.WriteString("\n")

	tag := " (Static Target)"
	if res.TargetMode == model.TargetModeSmart {
		tag = " (Smart Target)"
	}
	fmt.Fprintf(&b, "  Target Breakeven Occupancy: %.1f%%%s\n", res.TargetBreakevenPct, tag)
	fmt.Fprintf(&b, "  Dynamic Multiplier: %.2fx\n", res.DynamicMultiplier)
	if res.PublishedPrice != nil {
		fmt.Fprintf(&b, "  Published Price: %s\n", Price(*res.PublishedPrice))
	} else {
		b.WriteString("  Published Price: Not set\n")
	}
	fmt.Fprintf(&b, "  Recommended Price: %s\n", Price(res.RecommendedPrice))
	fmt.Fprintf(&b, "  Bottom Price: %s\n", Price(res.BottomPrice))

	if res.IsLosingMoney {
		b.WriteString("  ALERT: This location is losing money at current occupancy!\n")
	}
	if res.Override != nil {
		b.WriteString("  Manual Override Applied:\n")
		fmt.Fprintf(&b, "    Overridden by: %s\n", res.Override.OverriddenBy)
		fmt.Fprintf(&b, "    Reason: %s\n", res.Override.Reason)
		fmt.Fprintf(&b, "    Original price: %s\n", Price(res.Override.OriginalPrice))
	}
	if verbose && res.Reasoning != "" {
		fmt.Fprintf(&b, "  Reasoning: %s\n", res.Reasoning)
	}
	return b.String()
}

// Skips renders the batch skip summary.
func Skips(skips []model.Skip) string {
	if len(skips) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Skipped locations:\n")
	for _, s := range skips {
		fmt.Fprintf(&b, "  %s: %s\n", s.Location, s.Reason)
	}
	return b.String()
}

// Price formats a monetary amount as an integer with thousands separators.
func Price(v float64) string {
	return groupThousands(int64(math.Round(v)))
}

// PriceRounded rounds to the nearest step before formatting; the sold price
// display uses a 10,000 step.
func PriceRounded(v float64, nearest int64) string {
	if nearest <= 0 {
		nearest = 1
	}
	rounded := int64(math.Round(v/float64(nearest))) * nearest
	return groupThousands(rounded)
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		s = s + "," + strings.Join(parts, ",")
	}
	if neg {
		return "-" + s
	}
	return s
}
