package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline and sync counters, exposed on /metrics by the API server.
var (
	PipelineRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_pipeline_runs_total",
		Help: "Number of pricing pipeline runs started.",
	})

	LocationsPriced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_locations_priced_total",
		Help: "Number of locations that produced a pricing result.",
	})

	LocationsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_locations_skipped_total",
		Help: "Number of locations skipped during pricing runs.",
	}, []string{"reason"})

	SyncRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_sync_rows_total",
		Help: "Provider rows upserted into the local store.",
	}, []string{"export"})

	OverridesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricing_overrides_recorded_total",
		Help: "Manual override entries appended to the log.",
	})
)
