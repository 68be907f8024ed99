// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recetario/internal/core/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import taxonomies, terms and recipes from YAML",
		Long: `Imports a catalog document through the regular services, so names are
validated and recipe slugs are derived as for API writes.

Recipes reference terms by path starting at the facet:

  recipes:
    - title: Pastel de chocolate
      terms: ["Tipo de plato/Postre/Pastel"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0])
		},
	}
}

func runSeed(cmd *cobra.Command, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer file.Close()

	document, err := seed.Parse(file)
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		importer := seed.NewImporter(deps.Taxonomy, deps.Recipes, deps.Logger)

		counts, err := importer.Import(cmd.Context(), document)
		printCounts(cmd, counts)
		return err
	})
}

func printCounts(cmd *cobra.Command, counts seed.Counts) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "taxonomies: %d\n", counts.Taxonomies)
	fmt.Fprintf(out, "facets:     %d\n", counts.Facets)
	fmt.Fprintf(out, "terms:      %d\n", counts.Terms)
	fmt.Fprintf(out, "recipes:    %d\n", counts.Recipes)
}
