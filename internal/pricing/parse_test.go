package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float", 12.5, 0, 12.5},
		{"int", 7, 0, 7},
		{"string", "42.5", 0, 42.5},
		{"comma grouped", "1,234,567.89", 0, 1234567.89},
		{"whitespace", "  10 ", 0, 10},
		{"empty string", "", -1, -1},
		{"garbage", "abc", -1, -1},
		{"nil", nil, 5, 5},
		{"nan", math.NaN(), 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloat(tt.in, tt.def))
		})
	}
}

func TestParseAbs(t *testing.T) {
	assert.Equal(t, 1500.0, ParseAbs(-1500.0, 0))
	assert.Equal(t, 1500.0, ParseAbs("-1,500", 0))
	assert.Equal(t, 9.0, ParseAbs(nil, 9))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt(42, 0))
	assert.Equal(t, 42, ParseInt(int64(42), 0))
	assert.Equal(t, 42, ParseInt(42.9, 0))
	assert.Equal(t, 1234, ParseInt("1,234", 0))
	assert.Equal(t, -1, ParseInt("x", -1))
	assert.Equal(t, -1, ParseInt(nil, -1))
}

func TestParsePct(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"plain number", 55.0, 55},
		{"percent string", "55%", 55},
		{"percent string spaced", " 55.5 % ", 55.5},
		{"fraction promoted", 0.55, 55},
		{"one stays one", 1.0, 1},
		{"zero stays zero", 0.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePct(tt.in, -1), 1e-9)
		})
	}
	assert.Equal(t, -1.0, ParsePct("junk", -1))
}
