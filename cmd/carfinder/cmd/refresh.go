package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func refreshCommand() *cobra.Command {
	var makeName string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull live listings into the cache once and exit",
		Long: "Runs a single live data refresh against the configured providers without " +
			"starting the API server. Useful from cron or after a fresh migrate.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			var prefs *domain.PreferenceSet
			if makeName != "" {
				prefs = &domain.PreferenceSet{Make: makeName}
			}

			res := a.engine.RefreshLiveData(cmd.Context(), prefs)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			if !res.Success {
				return fmt.Errorf("refresh failed: %s", res.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&makeName, "make", "", "only refresh listings of this make")

	return cmd
}
