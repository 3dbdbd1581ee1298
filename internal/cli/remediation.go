package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pratik-mahalle/threatwatch/pkg/client"
	"github.com/spf13/cobra"
)

func newRemediationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remediation",
		Aliases: []string{"rem"},
		Short:   "Drive alert remediation",
	}

	cmd.AddCommand(newRemediationListCmd())
	cmd.AddCommand(newRemediationExecuteCmd())
	for _, action := range []string{client.ActionApprove, client.ActionRetry, client.ActionRollback, client.ActionStop} {
		cmd.AddCommand(newRemediationActionCmd(action))
	}

	return cmd
}

func newRemediationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remediation tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := apiClient.Remediations().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list remediation tasks: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tasks)
			}

			t := NewTable("ID", "THREAT", "PLAYBOOK", "TYPE", "PROGRESS", "STATUS")
			for _, task := range tasks {
				t.AddRow(
					strconv.FormatInt(task.ID, 10),
					truncate(task.Threat, 40),
					task.Playbook,
					task.Type,
					strconv.Itoa(task.Progress)+"%",
					formatStatus(task.Status),
				)
			}
			t.Render()
			return nil
		},
	}
}

// newRemediationActionCmd builds one subcommand per action, named after it
// in lower case
func newRemediationActionCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <alert-id>", strings.ToLower(action)),
		Short: fmt.Sprintf("Apply %s to an alert", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			res, err := apiClient.Remediations().Act(context.Background(), id, action)
			if err != nil {
				return fmt.Errorf("failed to apply %s: %w", action, err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Fprintf(stdout, "%s (status: %s)\n", res.Message, res.Status)
			return nil
		},
	}
}

func newRemediationExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute",
		Short: "Request a playbook run",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Remediations().Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to execute playbook: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(res)
			}
			fmt.Fprintf(stdout, "%s (task %d)\n", res.Message, res.TaskID)
			return nil
		},
	}
}
