package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/threatwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Inspect alerts",
	}

	cmd.AddCommand(authRequired(newAlertListCmd()))
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts, err := apiClient.Alerts().List(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(alerts)
			}
			renderAlerts(alerts)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of alerts (server default when unset)")

	return cmd
}

func renderAlerts(alerts []client.Alert) {
	t := NewTable("ID", "SOURCE", "PREDICTION", "CONFIDENCE", "SEVERITY", "STATUS", "TIME")
	for _, a := range alerts {
		t.AddRow(
			strconv.FormatInt(a.ID, 10),
			truncate(a.SrcIP, 40),
			a.Prediction,
			formatConfidence(a.Confidence),
			formatSeverity(a.Severity),
			formatStatus(a.Status),
			a.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	t.Render()
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := apiClient.Alerts().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Fprintf(stdout, "ID:         %d\n", a.ID)
			fmt.Fprintf(stdout, "Source:     %s\n", a.SrcIP)
			fmt.Fprintf(stdout, "Prediction: %s\n", a.Prediction)
			fmt.Fprintf(stdout, "Confidence: %s\n", formatConfidence(a.Confidence))
			fmt.Fprintf(stdout, "Severity:   %s\n", formatSeverity(a.Severity))
			fmt.Fprintf(stdout, "Status:     %s\n", formatStatus(a.Status))
			fmt.Fprintf(stdout, "Time:       %s\n", a.Timestamp.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show alert counts across all owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := apiClient.Alerts().Summary(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(o)
			}

			fmt.Fprintf(stdout, "Total:   %d\n", o.Total)
			fmt.Fprintf(stdout, "Threats: %d\n", o.Threats)
			for _, s := range []string{"Active", "Remediated", "Safe"} {
				fmt.Fprintf(stdout, "  %-11s %d\n", s+":", o.ByStatus[s])
			}
			for _, s := range []string{"Critical", "High", "Medium", "Low"} {
				fmt.Fprintf(stdout, "  %-11s %d\n", s+":", o.BySeverity[s])
			}
			return nil
		},
	}
}

func newLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show recent alerts as security events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := apiClient.Alerts().Logs(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get logs: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(events)
			}

			t := NewTable("TIME", "LEVEL", "EVENT", "IP", "MESSAGE")
			for _, e := range events {
				t.AddRow(e.Timestamp.Format("2006-01-02 15:04:05"), e.Level, e.Event, e.IP, truncate(e.Message, 60))
			}
			t.Render()
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}
