package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func refreshCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull live listings into the server's cache",
		Long: "Asks the server to search its live providers and cache the results.\n" +
			"Without flags the server's default refresh search is used.",
		Example: `  cf refresh
  cf refresh --make Tesla`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs := &domain.PreferenceSet{}
			flags.apply(cmd.Flags(), prefs)
			if prefs.IsEmpty() {
				prefs = nil
			}

			res, err := newClient().Refresh(cmd.Context(), prefs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, res)
			}

			if !res.Success {
				return fmt.Errorf("refresh failed: %s", res.Error)
			}
			fmt.Fprintf(out, "Refresh complete: %d new listings cached.\n", res.NewListingsCount)
			return nil
		},
	}
	flags.register(cmd.Flags())

	return cmd
}
