// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/config"
	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/logging"
	"github.com/taibuivan/recetario/internal/platform/objectstore"
	pgstore "github.com/taibuivan/recetario/internal/platform/postgres"
)

// Deps holds the services database commands work with.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Taxonomy *taxonomy.Service
	Recipes  *recipe.Service
}

// withDeps loads configuration, connects to PostgreSQL and builds the services,
// then calls fn. Connections are closed when fn returns.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, err := config.LoadTools()
	if err != nil {
		return err
	}

	// Command output goes to stdout, logs go to stderr.
	logger, closeLog := logging.New(logging.Options{
		App:    constants.AppName + "ctl",
		Debug:  cfg.Debug,
		Stdout: os.Stderr,
	})
	defer closeLog()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pool.Close()

	images, _, err := objectstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening image store: %w", err)
	}

	taxonomyService := taxonomy.NewService(taxonomy.NewPostgresRepository(pool), logger)
	recipeService := recipe.NewService(recipe.NewPostgresRepository(pool), taxonomyService.Expander(), images, logger)

	return fn(&Deps{
		Config:   cfg,
		Logger:   logger,
		Taxonomy: taxonomyService,
		Recipes:  recipeService,
	})
}
