package main

import (
	"creator-yield/internal/export"
	"creator-yield/internal/yield"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func bandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "band <creator>...",
		Short: "Print the yield band of each creator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATOR\tSEED\tMIN\tMAX")
			for _, id := range args {
				b := yield.BandFor(id)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", id, yield.Seed(id), b.Min, b.Max)
			}
			return w.Flush()
		},
	}
}

func seriesCmd() *cobra.Command {
	var (
		end    int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "series <creator>...",
		Short: "Print the 12-month yield series of each creator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := endMonth(end)
			if err != nil {
				return err
			}
			ds := export.Build(args, month)
			if asJSON {
				return export.Encode(cmd.OutOrStdout(), ds.Snapshots)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
			for _, snap := range ds.Snapshots {
				labels := make([]string, len(snap.Series))
				values := make([]string, len(snap.Series))
				for i, p := range snap.Series {
					labels[i] = p.Label
					values[i] = fmt.Sprintf("%.2f", p.Value)
				}
				fmt.Fprintf(w, "%s\t%s\n", snap.CreatorID, strings.Join(labels, "\t"))
				fmt.Fprintf(w, "\t%s\n", strings.Join(values, "\t"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&end, "end", 0, "month number (1-12) the series ends at; 0 keeps Jan..Dec")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")

	return cmd
}

func datasetCmd() *cobra.Command {
	var (
		out string
		end int
	)
	cmd := &cobra.Command{
		Use:   "dataset <creator>...",
		Short: "Write one JSON snapshot per creator plus index.json",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := endMonth(end)
			if err != nil {
				return err
			}
			ds := export.Build(args, month)
			if err := export.WriteDataset(ds, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d snapshots into %s\n", len(ds.Snapshots), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "data", "output directory")
	cmd.Flags().IntVar(&end, "end", 0, "month number (1-12) the series ends at")

	return cmd
}

func endMonth(n int) (time.Month, error) {
	if n < 0 || n > 12 {
		return 0, fmt.Errorf("--end must be between 1 and 12, got %d", n)
	}
	return time.Month(n), nil
}
