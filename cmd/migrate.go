package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(allModels()...); err != nil {
			return err
		}
		logger.Info("AutoMigrate successful")
		return nil
	},
}
