package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "Show the preferences the assistant recognizes in a text",
		Example: `  cf extract "newer Honda SUV with heated seats, max 40k"
  cf extract "Ram 2500 near 80202" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, resp)
			}

			if err := printPreferences(out, &resp.Preferences); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTopic: %s\n", resp.Topic)
			return nil
		},
	}
}
