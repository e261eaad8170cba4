package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Safe parsing for provider values. The upstream exports mix numeric types,
// comma-grouped strings, and "%"-suffixed percentages; every fallback to a
// default is explicit here instead of scattered through callers.

// ParseFloat converts v to a float64, stripping comma grouping from strings.
// Returns def when the value cannot be parsed or is non-finite.
func ParseFloat(v any, def float64) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// ParseAbs is ParseFloat with the sign dropped; expense exports may book
// amounts as debits.
func ParseAbs(v any, def float64) float64 {
	return math.Abs(ParseFloat(v, def))
}

// ParseInt converts v to an int, stripping comma grouping. Returns def when
// the value cannot be parsed.
func ParseInt(v any, def int) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return def
		}
		return int(x)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		n, err := strconv.Atoi(s)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// ParsePct converts v to a percentage in [0,100]. A "%"-suffixed string is
// read as-is; a bare number below 1.0 is assumed to be a fraction and
// promoted. Returns def on failure.
func ParsePct(v any, def float64) float64 {
	if s, ok := v.(string); ok && strings.Contains(s, "%") {
		return ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "%", "")), def)
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	if f < 1.0 && f > 0 {
		return f * 100
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
