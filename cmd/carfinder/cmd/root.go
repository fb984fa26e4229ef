// Package cmd implements the carfinder server commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "carfinder",
	Short: "Search used car listings across providers",
	Long: "carfinder aggregates used car listings from several providers, caches them in " +
		"PostgreSQL, ranks them against a shopper's preferences and answers shopping questions " +
		"through a chat API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(refreshCommand())
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
