package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server readiness and alert overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ready, readyErr := apiClient.Ready(ctx)
			overview, overviewErr := apiClient.Alerts().Summary(ctx)

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{}
				if readyErr == nil {
					summary["readiness"] = ready
				}
				if overviewErr == nil {
					summary["alerts"] = overview
				}
				return printOutput(summary)
			}

			fmt.Fprintln(stdout, "ThreatWatch Status")
			fmt.Fprintln(stdout, strings.Repeat("=", 40))

			if readyErr != nil {
				fmt.Fprintf(stdout, "  Server:   (error: %v)\n", readyErr)
			} else {
				fmt.Fprintf(stdout, "  Server:   %s\n", ready["status"])
				for name, state := range ready {
					if name != "status" {
						fmt.Fprintf(stdout, "    %-10s %s\n", name+":", state)
					}
				}
			}

			if overviewErr != nil {
				fmt.Fprintf(stdout, "  Alerts:   (error: %v)\n", overviewErr)
				return nil
			}
			fmt.Fprintf(stdout, "  Alerts:   %d total, %d threats", overview.Total, overview.Threats)
			if active := overview.ByStatus["Active"]; active > 0 {
				fmt.Fprintf(stdout, " (%d active)", active)
			}
			fmt.Fprintln(stdout)
			if overview.LatestAt != nil {
				fmt.Fprintf(stdout, "  Latest:   %s\n", overview.LatestAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
