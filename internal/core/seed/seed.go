// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seed bulk-loads a catalog from a YAML document.

Every record goes through the regular services, so names are validated, term
parents are checked and recipe slugs are derived exactly as for API writes.

Recipes reference terms by path, "Facet/Parent/Child", starting at the facet
name. Facet names must therefore be unique across the whole document.
*/
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
)

// # Document Model

// Document is the root of a seed file.
type Document struct {
	Taxonomies []TaxonomyEntry `yaml:"taxonomies"`
	Recipes    []RecipeEntry   `yaml:"recipes"`
}

type TaxonomyEntry struct {
	Name   string       `yaml:"name"`
	Facets []FacetEntry `yaml:"facets"`
}

type FacetEntry struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Order       int         `yaml:"order"`
	Terms       []TermEntry `yaml:"terms"`
}

// TermEntry nests its children, so the YAML mirrors the hierarchy.
type TermEntry struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Order       int         `yaml:"order"`
	Children    []TermEntry `yaml:"children"`
}

type RecipeEntry struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Ingredients  string   `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
	Terms        []string `yaml:"terms"`
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(reader io.Reader) (*Document, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var document Document
	if err := decoder.Decode(&document); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse seed document: %w", err)
	}
	return &document, nil
}

// # Importer

// CatalogWriter creates taxonomy records.
type CatalogWriter interface {
	CreateTaxonomy(context context.Context, taxonomy *taxonomy.Taxonomy) error
	CreateFacet(context context.Context, facet *taxonomy.Facet) error
	CreateTerm(context context.Context, term *taxonomy.Term) error
}

// RecipeWriter creates a recipe together with its terms.
type RecipeWriter interface {
	Create(context context.Context, recipe *recipe.Recipe, termIDs ...int) error
}

// Counts reports how many records an import created.
type Counts struct {
	Taxonomies int `json:"taxonomies"`
	Facets     int `json:"facets"`
	Terms      int `json:"terms"`
	Recipes    int `json:"recipes"`
}

// Importer writes a [Document] through the services.
type Importer struct {
	catalog CatalogWriter
	recipes RecipeWriter
	logger  *slog.Logger
}

// NewImporter constructs an [Importer].
func NewImporter(catalog CatalogWriter, recipes RecipeWriter, logger *slog.Logger) *Importer {
	return &Importer{catalog: catalog, recipes: recipes, logger: logger}
}

/*
Import creates every taxonomy, facet, term and recipe of document in order.

Description: The import is not transactional. It stops at the first failure
and the returned counts tell how far it got.

Returns:
  - Counts: Records created
  - error: The first service error, or an unknown term path
*/
func (importer *Importer) Import(context context.Context, document *Document) (Counts, error) {
	var counts Counts
	paths := make(map[string]int)

	// 1. Taxonomies, facets and term forests
	for _, entry := range document.Taxonomies {
		created := &taxonomy.Taxonomy{Name: entry.Name}
		if err := importer.catalog.CreateTaxonomy(context, created); err != nil {
			return counts, fmt.Errorf("taxonomy %q: %w", entry.Name, err)
		}
		counts.Taxonomies++

		for _, facetEntry := range entry.Facets {
			if _, taken := paths[facetEntry.Name]; taken {
				return counts, fmt.Errorf("facet %q: name used more than once", facetEntry.Name)
			}

			facet := &taxonomy.Facet{
				TaxonomyID:  created.ID,
				Name:        facetEntry.Name,
				Description: facetEntry.Description,
				Order:       facetEntry.Order,
			}
			if err := importer.catalog.CreateFacet(context, facet); err != nil {
				return counts, fmt.Errorf("facet %q: %w", facetEntry.Name, err)
			}
			counts.Facets++
			paths[facetEntry.Name] = 0

			if err := importer.importTerms(context, facet.ID, nil, facetEntry.Name, facetEntry.Terms, paths, &counts); err != nil {
				return counts, err
			}
		}
	}

	// 2. Recipes, tagged by term path
	for _, entry := range document.Recipes {
		termIDs := make([]int, 0, len(entry.Terms))
		for _, path := range entry.Terms {
			id, found := paths[normalizePath(path)]
			if !found || id == 0 {
				return counts, fmt.Errorf("recipe %q: unknown term %q", entry.Title, path)
			}
			termIDs = append(termIDs, id)
		}

		created := &recipe.Recipe{
			Title:           entry.Title,
			Description:     entry.Description,
			IngredientsText: entry.Ingredients,
			Instructions:    entry.Instructions,
		}
		if err := importer.recipes.Create(context, created, termIDs...); err != nil {
			return counts, fmt.Errorf("recipe %q: %w", entry.Title, err)
		}
		counts.Recipes++
	}

	importer.logger.Info("seed_imported",
		slog.Int("taxonomies", counts.Taxonomies),
		slog.Int("facets", counts.Facets),
		slog.Int("terms", counts.Terms),
		slog.Int("recipes", counts.Recipes),
	)
	return counts, nil
}

// importTerms creates entries depth-first under parentID and records each path.
func (importer *Importer) importTerms(context context.Context, facetID int, parentID *int, prefix string, entries []TermEntry, paths map[string]int, counts *Counts) error {
	for _, entry := range entries {
		term := &taxonomy.Term{
			FacetID:     facetID,
			ParentID:    parentID,
			Name:        entry.Name,
			Description: entry.Description,
			Order:       entry.Order,
		}
		path := prefix + "/" + entry.Name
		if err := importer.catalog.CreateTerm(context, term); err != nil {
			return fmt.Errorf("term %q: %w", path, err)
		}
		counts.Terms++
		paths[path] = term.ID

		if err := importer.importTerms(context, facetID, &term.ID, path, entry.Children, paths, counts); err != nil {
			return err
		}
	}
	return nil
}

func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "/")
}
