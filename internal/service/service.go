package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"office-pricing/internal/config"
	"office-pricing/internal/data"
	"office-pricing/internal/format"
	"office-pricing/internal/metrics"
	"office-pricing/internal/model"
	"office-pricing/internal/pricing"
	"office-pricing/internal/store"
)

// Service wires the cached data store, the rules config, and the pricing
// engine behind the operations the CLI, API, and chat front ends share.
type Service struct {
	store  *store.Store
	config *config.Config
	engine *pricing.Engine
}

func New(st *store.Store, cfg *config.Config) *Service {
	return &Service{
		store:  st,
		config: cfg,
		engine: &pricing.Engine{
			Overrides: st,
			Published: st,
			Reasoner:  format.TemplateReasoner{},
		},
	}
}

// RunPipeline prices every eligible location for the anchor date. When
// location is non-empty, output is filtered to that one location
// (case-insensitive, hyphens treated as spaces, matching chat input).
func (s *Service) RunPipeline(ctx context.Context, anchor time.Time, location string) (*pricing.BatchResult, error) {
	metrics.PipelineRuns.Inc()

	monthly, daily, err := s.loadWindows(anchor)
	if err != nil {
		return nil, err
	}

	merged := data.BuildSnapshots(anchor, monthly, daily)
	snaps := merged.Snapshots
	if location != "" {
		snaps = filterSnapshots(snaps, location)
		if len(snaps) == 0 {
			// A single-location query that matches nothing is an empty
			// batch, not a fatal run.
			batch := &pricing.BatchResult{AnchorDate: anchor}
			for _, sk := range merged.Skips {
				if normalizeName(sk.Location) == normalizeName(location) {
					batch.Skips = append(batch.Skips, sk)
				}
			}
			return batch, nil
		}
	}

	log.Info().
		Time("anchor", anchor).
		Int("snapshots", len(snaps)).
		Int("merge_skips", len(merged.Skips)).
		Msg("pricing pipeline starting")

	batch, err := s.engine.Run(ctx, anchor, snaps, s.config)
	if err != nil {
		return nil, err
	}

	// Merge-time skips join run-time skips so the batch reports one outcome
	// per location that had data.
	if location == "" {
		batch.Skips = append(merged.Skips, batch.Skips...)
	} else {
		for _, sk := range merged.Skips {
			if normalizeName(sk.Location) == normalizeName(location) {
				batch.Skips = append([]model.Skip{sk}, batch.Skips...)
			}
		}
	}

	metrics.LocationsPriced.Add(float64(len(batch.Results)))
	for range batch.Skips {
		metrics.LocationsSkipped.WithLabelValues("pipeline").Inc()
	}
	return batch, nil
}

// PricingFor prices a single location, returning nil when the location has
// no data for the period.
func (s *Service) PricingFor(ctx context.Context, anchor time.Time, location string) (*model.PricingResult, error) {
	batch, err := s.RunPipeline(ctx, anchor, location)
	if err != nil {
		return nil, err
	}
	for i := range batch.Results {
		if normalizeName(batch.Results[i].Location) == normalizeName(location) {
			return &batch.Results[i], nil
		}
	}
	return nil, nil
}

// RecordOverride appends an analyst override to the log.
func (s *Service) RecordOverride(o model.Override) (model.Override, error) {
	saved, err := s.store.AddOverride(o)
	if err != nil {
		return model.Override{}, err
	}
	metrics.OverridesRecorded.Inc()
	log.Info().
		Str("location", saved.Location).
		Int("year", saved.Year).
		Int("month", saved.Month).
		Str("analyst", saved.AnalystName).
		Msg("override recorded")
	return saved, nil
}

// OverrideHistory returns the audit log for a location, newest first.
func (s *Service) OverrideHistory(location string) ([]model.Override, error) {
	return s.store.ListOverrides(location)
}

func (s *Service) loadWindows(anchor time.Time) ([]model.MonthlyExpenseRow, []model.DailyOccupancyRow, error) {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := first.AddDate(0, -2, 0)

	monthly, err := s.store.MonthlyExpenses(from.Year(), int(from.Month()), anchor.Year(), int(anchor.Month()))
	if err != nil {
		return nil, nil, err
	}
	daily, err := s.store.DailyOccupancies(anchor.AddDate(0, 0, -7), anchor.AddDate(0, 0, -1))
	if err != nil {
		return nil, nil, err
	}
	return monthly, daily, nil
}

func filterSnapshots(snaps []model.LocationSnapshot, location string) []model.LocationSnapshot {
	want := normalizeName(location)
	out := snaps[:0:0]
	for _, s := range snaps {
		if normalizeName(s.Name) == want {
			out = append(out, s)
		}
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "-", " ")))
}
