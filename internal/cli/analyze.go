package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pratik-mahalle/threatwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		rec  client.FeatureRecord
		file string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Submit a traffic flow for classification",
		Long: `Submit one flow record for classification. Fields come from flags,
or from a JSON document with --file (use "-" for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				loaded, err := readFeatureRecord(file)
				if err != nil {
					return err
				}
				rec = *loaded
			}
			if rec.SrcIP == "" {
				return fmt.Errorf("source address is required (--src-ip)")
			}

			summary, err := apiClient.Analyze(context.Background(), rec)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			verdict := "Normal"
			if summary.IsThreat {
				verdict = "Attack"
			}
			fmt.Fprintf(stdout, "Alert:      %d\n", summary.ID)
			fmt.Fprintf(stdout, "Verdict:    %s\n", verdict)
			fmt.Fprintf(stdout, "Confidence: %s\n", formatConfidence(summary.Confidence))
			fmt.Fprintf(stdout, "Severity:   %s\n", formatSeverity(summary.Severity))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", "", "read the flow record from a JSON file")
	f.StringVar(&rec.SrcIP, "src-ip", "", "source address")
	f.IntVar(&rec.SrcPort, "src-port", 0, "source port")
	f.StringVar(&rec.DstIP, "dst-ip", "", "destination address")
	f.IntVar(&rec.DstPort, "dst-port", 0, "destination port")
	f.StringVar(&rec.Proto, "proto", "", "transport protocol")
	f.StringVar(&rec.Service, "service", "", "application service")
	f.Float64Var(&rec.Duration, "duration", 0, "flow duration in seconds")
	f.Int64Var(&rec.Bytes, "bytes", 0, "bytes transferred")
	f.Int64Var(&rec.Packets, "packets", 0, "packets transferred")

	return cmd
}

func readFeatureRecord(path string) (*client.FeatureRecord, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var rec client.FeatureRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse flow record: %w", err)
	}
	return &rec, nil
}
