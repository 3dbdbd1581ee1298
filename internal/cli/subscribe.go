package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe EMAIL",
		Short: "Subscribe an address to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Subscribe(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to subscribe: %w", err)
			}
			fmt.Fprintf(stdout, "Subscribed %s. A confirmation email is on its way.\n", args[0])
			return nil
		},
	}
}
