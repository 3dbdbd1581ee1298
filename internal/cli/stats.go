package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/threatwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Stats(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			fmt.Fprintf(stdout, "Total scans:   %d\n", stats.TotalScans)
			fmt.Fprintf(stdout, "Total threats: %d\n\n", stats.TotalThreats)
			renderBuckets("SEVERITY", stats.SeverityDistribution)
			fmt.Fprintln(stdout)
			renderBuckets("STATUS", stats.StatusDistribution)
			return nil
		},
	}
}

func renderBuckets(title string, buckets []client.Bucket) {
	t := NewTable(title, "COUNT")
	for _, b := range buckets {
		t.AddRow(b.Name, strconv.FormatInt(b.Value, 10))
	}
	t.Render()
}
