// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command recetarioctl administers a Recetario installation: it seeds the
// catalog, prints term trees, mints editor tokens and runs migrations.
//
// Database commands read the same environment variables as the API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recetario/internal/platform/constants"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recetarioctl",
		Short:         "Administer the Recetario recipe catalog",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newTreeCmd(),
		newTokenCmd(),
		newMigrateCmd(),
	)

	return rootCmd
}
