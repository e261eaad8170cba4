package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"office-pricing/internal/data"
	"office-pricing/internal/metrics"
)

// SyncFromProvider fetches both exports for the date range from the
// analytics provider and lands them in the store. Runs before a pipeline;
// the pipeline itself never touches the network.
func (s *Service) SyncFromProvider(ctx context.Context, client *data.AnalyticsClient, from, to time.Time) error {
	monthly, err := client.FetchMonthlyExpenses(ctx, from.Year(), int(from.Month()), to.Year(), int(to.Month()))
	if err != nil {
		return err
	}
	if err := s.store.UpsertMonthlyExpenses(monthly); err != nil {
		return err
	}
	metrics.SyncRows.WithLabelValues("monthly").Add(float64(len(monthly)))

	daily, err := client.FetchDailyOccupancies(ctx, from, to)
	if err != nil {
		return err
	}
	if err := s.store.UpsertDailyOccupancies(daily); err != nil {
		return err
	}
	metrics.SyncRows.WithLabelValues("daily").Add(float64(len(daily)))

	log.Info().
		Int("monthly_rows", len(monthly)).
		Int("daily_rows", len(daily)).
		Time("from", from).Time("to", to).
		Msg("provider sync complete")
	return nil
}

// SyncFromFile loads a saved export file into the store. Useful for
// development and for replaying provider snapshots.
func (s *Service) SyncFromFile(path string) error {
	resp, err := data.LoadExportJSON(path)
	if err != nil {
		return err
	}
	if err := s.store.UpsertMonthlyExpenses(resp.Monthly); err != nil {
		return err
	}
	metrics.SyncRows.WithLabelValues("monthly").Add(float64(len(resp.Monthly)))
	if err := s.store.UpsertDailyOccupancies(resp.Daily); err != nil {
		return err
	}
	metrics.SyncRows.WithLabelValues("daily").Add(float64(len(resp.Daily)))

	log.Info().
		Str("path", path).
		Int("monthly_rows", len(resp.Monthly)).
		Int("daily_rows", len(resp.Daily)).
		Msg("file sync complete")
	return nil
}
