package main

import (
	"go-workforce/internal/bootstrap"
	"go-workforce/internal/config"
	"go-workforce/internal/shared/connection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "workforce-admin",
	Short:        "Workforce administration",
	Long:         `Database maintenance for the workforce API: schema migrations and reference data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// setup loads configuration, the logger and a database handle shared by
// every subcommand.
func setup() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := bootstrap.NewLogger(cfg.IsProduction())
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}, cfg.DBMaxRetries)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}
