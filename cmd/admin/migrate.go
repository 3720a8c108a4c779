package main

import (
	"go-workforce/internal/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded SQL migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration instead")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	_, logger, db, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx := cmd.Context()
	if migrateRollback {
		err = migrations.Down(ctx, sqlDB)
	} else {
		err = migrations.Up(ctx, sqlDB)
	}
	if err != nil {
		return err
	}

	version, err := migrations.Version(ctx, sqlDB)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", zap.Int64("version", version), zap.Bool("rollback", migrateRollback))
	return nil
}
