package main

import (
	"fmt"

	"instime/cmd/internal/config"
	"instime/cmd/internal/domain/database"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		config.SetupLogging(cfg)

		if _, err := database.Init(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		log.Infof("schema is up to date")
		return nil
	},
}
