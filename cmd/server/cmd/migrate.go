package cmd

import (
	"context"

	"protest-tracker/internal/database"
	"protest-tracker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationURL, err := cfg.Database.MigrationURL()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Schema.Timeout)
		defer cancel()
		if err := database.MigrateUp(migrationURL)(ctx); err != nil {
			return err
		}
		logger.WithComponent("migrate").Info("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationURL, err := cfg.Database.MigrationURL()
		if err != nil {
			return err
		}
		if err := database.MigrateDown(migrationURL, downSteps); err != nil {
			return err
		}
		logger.WithComponent("migrate").Info("Migrations rolled back", zap.Int("steps", downSteps))
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
