package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectinfo/internal/storeinfra"
	"github.com/goliatone/go-projectinfo/pkg/di"
)

var migrateReset bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the project info schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		container, err := di.NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer container.Close()

		if migrateReset {
			if err := storeinfra.DropSchema(ctx, container.DB()); err != nil {
				return err
			}
		}
		if err := container.Migrate(ctx); err != nil {
			return err
		}

		container.Logger().Info("schema ready", "driver", cfg.Database.Driver, "reset", migrateReset)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateReset, "reset", false, "drop the table before creating it")
	rootCmd.AddCommand(migrateCmd)
}
