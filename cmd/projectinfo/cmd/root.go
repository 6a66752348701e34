// Package cmd contains the CLI commands for projectinfo.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectinfo/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "projectinfo",
	Short: "Project info data service",
	Long: `projectinfo serves CRUD and search over project records, keeping the
full listing and the id to name map in a cache.

Examples:
  # Create the table on the configured database
  projectinfo migrate --config projectinfo.yaml

  # Start the HTTP API
  projectinfo serve --config projectinfo.yaml`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
