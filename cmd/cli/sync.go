package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"office-pricing/internal/data"
)

func newSyncCmd() *cobra.Command {
	var (
		fromStr string
		toStr   string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull expense and occupancy exports into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if file != "" {
				return svc.SyncFromFile(file)
			}

			to := time.Now().UTC()
			if toStr != "" {
				if to, err = time.Parse("2006-01-02", toStr); err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
			}
			from := to.AddDate(0, -3, 0)
			if fromStr != "" {
				if from, err = time.Parse("2006-01-02", fromStr); err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
			}
			if from.After(to) {
				return fmt.Errorf("--from %s is after --to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
			}

			apiKey := os.Getenv("ANALYTICS_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("ANALYTICS_API_KEY must be set to sync from the provider")
			}
			client := data.NewAnalyticsClient(apiKey, os.Getenv("ANALYTICS_BASE_URL"))
			return svc.SyncFromProvider(cmd.Context(), client, from, to)
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start of range (YYYY-MM-DD, default 3 months ago)")
	cmd.Flags().StringVar(&toStr, "to", "", "End of range (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&file, "file", "", "Load a saved export JSON file instead of calling the provider")
	return cmd
}
