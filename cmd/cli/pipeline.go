package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"office-pricing/internal/analysis"
	"office-pricing/internal/format"
)

func newRunPipelineCmd() *cobra.Command {
	var (
		location string
		dateStr  string
		year     int
		month    int
		csvPath  string
	)

	cmd := &cobra.Command{
		Use:   "run-pipeline",
		Short: "Compute price recommendations for all locations (or one with --location)",
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := anchorFrom(dateStr, year, month)
			if err != nil {
				return err
			}
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			batch, err := svc.RunPipeline(cmd.Context(), anchor, location)
			if err != nil {
				return err
			}

			for i := range batch.Results {
				fmt.Println(format.Text(batch.Results[i], flagVerbose))
			}
			if s := format.Skips(batch.Skips); s != "" {
				fmt.Println(s)
			}

			if csvPath != "" {
				if err := format.WriteResultsCSV(csvPath, batch.Results); err != nil {
					return err
				}
				log.Info().Str("path", csvPath).Int("rows", len(batch.Results)).Msg("wrote CSV export")
			}

			log.Info().
				Int("priced", len(batch.Results)).
				Int("skipped", len(batch.Skips)).
				Time("anchor", batch.AnchorDate).
				Msg("pipeline complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Price a single location by name")
	cmd.Flags().StringVar(&dateStr, "date", "", "Anchor date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&year, "year", 0, "Anchor year (used with --month)")
	cmd.Flags().IntVar(&month, "month", 0, "Anchor month 1-12 (first of month)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write results to a CSV file")
	return cmd
}

func newCheckPricingCmd() *cobra.Command {
	var (
		dateStr string
		year    int
		month   int
	)

	cmd := &cobra.Command{
		Use:   "check-pricing <location>",
		Short: "Show the price recommendation for one location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := anchorFrom(dateStr, year, month)
			if err != nil {
				return err
			}
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := svc.PricingFor(cmd.Context(), anchor, args[0])
			if err != nil {
				return err
			}
			if res == nil {
				return fmt.Errorf("no pricing data for %q at %s", args[0], anchor.Format("2006-01-02"))
			}
			fmt.Println(format.Text(*res, flagVerbose))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Anchor date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&year, "year", 0, "Anchor year (used with --month)")
	cmd.Flags().IntVar(&month, "month", 0, "Anchor month 1-12 (first of month)")
	return cmd
}

func newRankCmd() *cobra.Command {
	var (
		dateStr string
		year    int
		month   int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank locations by margin of occupancy over breakeven, worst first",
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := anchorFrom(dateStr, year, month)
			if err != nil {
				return err
			}
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			batch, err := svc.RunPipeline(cmd.Context(), anchor, "")
			if err != nil {
				return err
			}

			ranks := analysis.RankByMargin(batch.Results)
			fmt.Printf("%-30s %10s %10s %8s %14s\n", "LOCATION", "OCC%", "BE%", "MARGIN", "RECOMMENDED")
			for _, r := range ranks {
				flag := ""
				if r.IsLosingMoney {
					flag = "  LOSING"
				}
				fmt.Printf("%-30s %9.1f%% %9.1f%% %+7.1f %14s%s\n",
					r.Location, r.OccupancyPct, r.BreakevenPct, r.MarginPts,
					format.Price(r.RecommendedPrice), flag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Anchor date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&year, "year", 0, "Anchor year (used with --month)")
	cmd.Flags().IntVar(&month, "month", 0, "Anchor month 1-12 (first of month)")
	return cmd
}
