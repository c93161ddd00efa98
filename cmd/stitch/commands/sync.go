package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/app"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the remote task list with the local note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			jsonOut, _ := cmd.Flags().GetBool("json")

			return c.app.Sync(cmd.Context(), app.SyncOptions{
				DryRun: dryRun,
				JSON:   jsonOut,
			})
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Compute and print the action list without applying it")
	cmd.Flags().Bool("json", false, "Emit logs as JSON")
	return cmd
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending sync actions without applying them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Status(cmd.Context())
		},
	}
}
