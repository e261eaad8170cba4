package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-pricing/internal/model"
)

func testSnapshot() model.LocationSnapshot {
	return model.LocationSnapshot{
		Name:                   "Downtown Hub",
		AnchorDate:             time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TotalSeats:             100,
		AvgExpense3Mo:          900_000_000,
		AvgOccupancy7d:         55,
		SoldPricePerSeatActual: 300_000,
		ExpenseMonths:          3,
		OccupancyDays:          7,
	}
}

func TestActualBreakevenOccupancy(t *testing.T) {
	got, err := ActualBreakevenOccupancy(testSnapshot())
	require.NoError(t, err)
	// 900M / 300k / 100 * 100 = 30%
	assert.InDelta(t, 30.0, got, 1e-9)
}

func TestActualBreakevenOccupancyZeroSoldPrice(t *testing.T) {
	snap := testSnapshot()
	snap.SoldPricePerSeatActual = 0

	_, err := ActualBreakevenOccupancy(snap)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestBreakevenPricePerSeat(t *testing.T) {
	snap := testSnapshot()

	got, err := BreakevenPricePerSeat(snap, 50)
	require.NoError(t, err)
	// 900M / 100 / 0.5 = 18M
	assert.InDelta(t, 18_000_000, got, 1e-6)

	// A higher target needs less per seat.
	higher, err := BreakevenPricePerSeat(snap, 75)
	require.NoError(t, err)
	assert.Less(t, higher, got)
}

func TestBreakevenPricePerSeatRejectsNonPositiveTarget(t *testing.T) {
	_, err := BreakevenPricePerSeat(testSnapshot(), 0)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	_, err = BreakevenPricePerSeat(testSnapshot(), -10)
	require.Error(t, err)
}
