package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/carfinder/internal/api/client"
)

func detailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "details <source> <id>",
		Short:   "Fetch one listing from the provider that published it",
		Example: `  cf details cargurus cg_001`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newClient().ListingDetails(cmd.Context(), args[0], args[1])
			if apiclient.IsNotFound(err) {
				return fmt.Errorf("listing %s not found at %s", args[1], args[0])
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), l)
			}
			return printListingDetail(cmd.OutOrStdout(), l)
		},
	}
}
