// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
)

type treeFlags struct {
	facetID int
	asJSON  bool
}

func newTreeCmd() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the term tree of every facet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.facetID, "facet", 0, "Only print this facet")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print the same JSON as /api/v1/facets-terms-tree")

	return cmd
}

func runTree(cmd *cobra.Command, flags *treeFlags) error {
	return withDeps(cmd.Context(), func(deps *Deps) error {
		var facets []*taxonomy.FacetTree

		if flags.facetID > 0 {
			facet, err := deps.Taxonomy.FacetTree(cmd.Context(), flags.facetID)
			if err != nil {
				return err
			}
			facets = []*taxonomy.FacetTree{facet}
		} else {
			var err error
			if facets, err = deps.Taxonomy.FacetsTree(cmd.Context()); err != nil {
				return err
			}
		}

		if flags.asJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(facets)
		}
		printTree(cmd.OutOrStdout(), facets)
		return nil
	})
}

// printTree writes one line per facet and an indented line per term.
func printTree(out io.Writer, facets []*taxonomy.FacetTree) {
	var printNodes func(nodes []*taxonomy.TermNode, depth int)
	printNodes = func(nodes []*taxonomy.TermNode, depth int) {
		for _, node := range nodes {
			fmt.Fprintf(out, "%s- %s (%d)\n", strings.Repeat("  ", depth), node.Name, node.ID)
			printNodes(node.Children, depth+1)
		}
	}

	for _, facet := range facets {
		fmt.Fprintf(out, "%s (%d)\n", facet.Name, facet.ID)
		printNodes(facet.Terms, 1)
	}
}
