package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/app"
)

func (c *CLI) newTriageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Ask the configured language model to prioritise open tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, _ := cmd.Flags().GetString("model")
			prompt, _ := cmd.Flags().GetString("prompt")

			return c.app.Triage(cmd.Context(), app.TriageOptions{
				Model:  model,
				Prompt: prompt,
			})
		},
	}
	cmd.Flags().StringP("model", "m", "", "Override the configured model name")
	cmd.Flags().StringP("prompt", "p", "", "Replace the default focus instruction")
	return cmd
}
