// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recetario/internal/platform/config"
	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/logging"
	"github.com/taibuivan/recetario/internal/platform/migration"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(-1)
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the last migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					var err error
					if steps, err = strconv.Atoi(args[0]); err != nil || steps < 1 {
						return cmd.Help()
					}
				}
				return runMigrate(steps)
			},
		},
	)

	return cmd
}

// runMigrate applies all pending migrations when steps is negative, otherwise rolls back steps.
func runMigrate(steps int) error {
	cfg, err := config.LoadTools()
	if err != nil {
		return err
	}

	logger, closeLog := logging.New(logging.Options{App: constants.AppName + "ctl", Debug: cfg.Debug, Stdout: os.Stderr})
	defer closeLog()

	if steps < 0 {
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger)
	}
	return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, logger)
}
