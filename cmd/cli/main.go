package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"office-pricing/internal/config"
	"office-pricing/internal/service"
	"office-pricing/internal/store"
)

var (
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "pricing",
		Short:        "Seat pricing recommendations for shared-office locations",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envOr("PRICING_CONFIG", "config/pricing_rules.yaml"), "Path to pricing rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", envOr("PRICING_DB", "pricing.db"), "Path to the SQLite store")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output (includes reasoning)")

	rootCmd.AddCommand(newRunPipelineCmd())
	rootCmd.AddCommand(newCheckPricingCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newOverrideCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// openService loads the rules config and opens the store. The returned
// closer must be called when the command finishes.
func openService() (*service.Service, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("load pricing rules %s: %w", flagConfig, err)
	}
	st, err := store.Open(flagDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open store %s: %w", flagDB, err)
	}
	return service.New(st, cfg), func() { st.Close() }, nil
}

// anchorFrom resolves the anchor date from flags: an explicit --date wins,
// then --year/--month (first of month), then today.
func anchorFrom(dateStr string, year, month int) (time.Time, error) {
	if dateStr != "" {
		return time.Parse("2006-01-02", dateStr)
	}
	now := time.Now().UTC()
	if year == 0 && month == 0 {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
