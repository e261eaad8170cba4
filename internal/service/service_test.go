package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-pricing/internal/config"
	"office-pricing/internal/model"
	"office-pricing/internal/store"
)

var testAnchor = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.UpsertMonthlyExpenses([]model.MonthlyExpenseRow{
		{BuildingName: "Downtown Hub", Year: 2025, Month: 4, TotalExpense: 800_000_000, TotalSeats: 100, SoldPricePerSeat: 290_000},
		{BuildingName: "Downtown Hub", Year: 2025, Month: 5, TotalExpense: 900_000_000, TotalSeats: 100, SoldPricePerSeat: 295_000},
		{BuildingName: "Downtown Hub", Year: 2025, Month: 6, TotalExpense: 1_000_000_000, TotalSeats: 100, SoldPricePerSeat: 300_000},
		{BuildingName: "Riverside Campus", Year: 2025, Month: 6, TotalExpense: 600_000_000, TotalSeats: 0, SoldPricePerSeat: 250_000},
	}))

	var daily []model.DailyOccupancyRow
	for i := 1; i <= 7; i++ {
		date := testAnchor.AddDate(0, 0, -i)
		daily = append(daily,
			model.DailyOccupancyRow{BuildingName: "Downtown Hub", Date: date, OccupancyPct: 55},
			model.DailyOccupancyRow{BuildingName: "Riverside Campus", Date: date, OccupancyPct: 40},
		)
	}
	require.NoError(t, st.UpsertDailyOccupancies(daily))
	return st
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Locations: map[string]config.RulesConfig{
			"Downtown Hub":     {},
			"Riverside Campus": {},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunPipeline(t *testing.T) {
	svc := New(seededStore(t), testConfig(t))

	batch, err := svc.RunPipeline(context.Background(), testAnchor, "")
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	res := batch.Results[0]
	assert.Equal(t, "Downtown Hub", res.Location)
	assert.InDelta(t, 30, res.ActualBreakevenPct, 1e-9)
	assert.Equal(t, 70.0, res.TargetBreakevenPct)
	assert.NotEmpty(t, res.Reasoning)

	// The zero-seat location is a reported skip, not a silent drop.
	require.Len(t, batch.Skips, 1)
	assert.Equal(t, "Riverside Campus", batch.Skips[0].Location)
}

func TestRunPipelineLocationFilter(t *testing.T) {
	svc := New(seededStore(t), testConfig(t))

	// Chat-style casing and hyphens resolve to the exact name.
	batch, err := svc.RunPipeline(context.Background(), testAnchor, "downtown-hub")
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)
	assert.Equal(t, "Downtown Hub", batch.Results[0].Location)
	assert.Empty(t, batch.Skips)
}

func TestRunPipelineUnknownLocationIsEmptyBatch(t *testing.T) {
	svc := New(seededStore(t), testConfig(t))

	batch, err := svc.RunPipeline(context.Background(), testAnchor, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	assert.Empty(t, batch.Skips)
}

func TestPricingFor(t *testing.T) {
	svc := New(seededStore(t), testConfig(t))

	res, err := svc.PricingFor(context.Background(), testAnchor, "Downtown Hub")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Downtown Hub", res.Location)

	res, err = svc.PricingFor(context.Background(), testAnchor, "Nowhere")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestRecordOverrideFlowsIntoPipeline(t *testing.T) {
	svc := New(seededStore(t), testConfig(t))

	saved, err := svc.RecordOverride(model.Override{
		Location: "Downtown Hub", Year: 2025, Month: 6,
		AnalystName: "lee", Reason: "renewal negotiation", OverridePrice: 25_000_000,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "", saved.ID.String())
	assert.False(t, saved.CreatedAt.IsZero())

	res, err := svc.PricingFor(context.Background(), testAnchor, "Downtown Hub")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsOverride)
	assert.Equal(t, 25_000_000.0, res.RecommendedPrice)

	history, err := svc.OverrideHistory("Downtown Hub")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "lee", history[0].AnalystName)
}

func TestSyncFromFile(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	svc := New(st, testConfig(t))

	path := filepath.Join(t.TempDir(), "export.json")
	payload := `{
		"status_code": 200,
		"monthly": [
			{"building_name": "Downtown Hub", "year": 2025, "month": 6,
			 "total_expense": 900000000, "total_seats": 100, "sold_price_per_seat": 300000}
		],
		"daily": [
			{"building_name": "Downtown Hub", "date": "2025-06-10T00:00:00Z", "occupancy_pct": 55}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	require.NoError(t, svc.SyncFromFile(path))

	monthly, err := st.MonthlyExpenses(2025, 6, 2025, 6)
	require.NoError(t, err)
	assert.Len(t, monthly, 1)

	daily, err := st.DailyOccupancies(
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, daily, 1)
}
