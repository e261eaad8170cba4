package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"office-pricing/internal/format"
	"office-pricing/internal/model"
)

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Record and inspect analyst price overrides",
	}
	cmd.AddCommand(newOverrideAddCmd())
	cmd.AddCommand(newOverrideListCmd())
	return cmd
}

func newOverrideAddCmd() *cobra.Command {
	var (
		year    int
		month   int
		analyst string
		reason  string
		price   float64
	)

	cmd := &cobra.Command{
		Use:   "add <location>",
		Short: "Record a manual price override for a location and month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if analyst == "" {
				analyst = os.Getenv("USER")
			}
			if analyst == "" {
				return fmt.Errorf("--analyst is required")
			}
			if price <= 0 {
				return fmt.Errorf("--price must be positive")
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			saved, err := svc.RecordOverride(model.Override{
				Location:      args[0],
				Year:          year,
				Month:         month,
				AnalystName:   analyst,
				Reason:        reason,
				OverridePrice: price,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded override %s: %s %d-%02d at %s by %s\n",
				saved.ID, saved.Location, saved.Year, saved.Month,
				format.Price(saved.OverridePrice), saved.AnalystName)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Target year")
	cmd.Flags().IntVar(&month, "month", 0, "Target month 1-12")
	cmd.Flags().StringVar(&analyst, "analyst", "", "Analyst name (defaults to $USER)")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the override is needed")
	cmd.Flags().Float64Var(&price, "price", 0, "Override price per seat")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newOverrideListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [location]",
		Short: "Show the override audit log, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			}

			svc, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			overrides, err := svc.OverrideHistory(location)
			if err != nil {
				return err
			}
			if len(overrides) == 0 {
				fmt.Println("No overrides recorded.")
				return nil
			}
			for _, o := range overrides {
				fmt.Printf("%s  %-30s %d-%02d  %12s  %-15s %s\n",
					o.CreatedAt.Format("2006-01-02 15:04"),
					o.Location, o.Year, o.Month,
					format.Price(o.OverridePrice), o.AnalystName, o.Reason)
			}
			return nil
		},
	}
	return cmd
}
