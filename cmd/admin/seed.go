package main

import (
	"go-workforce/internal/seed"
	"go-workforce/internal/shared/clock"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	RunE:  runSeed,
	Use:   "seed",
	Short: "create the reference departments and roles",
}

func runSeed(cmd *cobra.Command, _ []string) error {
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

	res, err := seed.Run(cmd.Context(), db, clock.System(), logger)
	if err != nil {
		return err
	}
	logger.Info("seed finished",
		zap.Int("departments_created", res.DepartmentsCreated),
		zap.Int("roles_created", res.RolesCreated),
	)
	return nil
}
