// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy owns the classification side of the catalog.

A [Taxonomy] groups [Facet]s; each facet holds a forest of [Term]s linked by
an optional parent. Recipes are tagged with terms, and filtering by a term
also matches recipes tagged with any of its descendants.

# Components

  - Repository / HierarchyReader: persistence and child lookups.
  - Hierarchy: in-memory snapshot of a term forest with a derived child index.
  - Expander: descendant expansion of a set of term ids.
  - TreeProjector: nested JSON projection of a facet or term subtree.
*/
package taxonomy

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Core Entities

// Taxonomy is a named classification scheme (e.g. "Cocina").
type Taxonomy struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Facet is one dimension of a taxonomy (e.g. "Tipo de plato", "Ingrediente principal").
type Facet struct {
	ID          int    `json:"id"`
	TaxonomyID  int    `json:"taxonomy_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Term is a node of a facet's forest. ParentID is nil for roots.
type Term struct {
	ID          int    `json:"id"`
	FacetID     int    `json:"facet_id"`
	ParentID    *int   `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// IsRoot reports whether the term has no parent.
func (term *Term) IsRoot() bool { return term.ParentID == nil }

// # Projections

// TermNode is the nested projection of a term and its descendants.
type TermNode struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Order       int         `json:"order"`
	Children    []*TermNode `json:"children"`
}

// FacetTree is a facet wrapped around the projection of its root terms.
type FacetTree struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Order       int         `json:"order"`
	Terms       []*TermNode `json:"terms"`
}

// # Filtering

// TermFilter narrows a term listing. Nil fields do not filter.
type TermFilter struct {
	FacetID   *int
	ParentID  *int
	RootsOnly bool
}

// # Ordering

// nameLanguage drives the collation of term names, so "arroz" sorts before
// "Ñoquis" and both before "Pasta".
var nameLanguage = language.Spanish

// compareTerms orders siblings by (order, name), with the id as a stable tiebreak.
func compareTerms(collator *collate.Collator, a, b *Term) int {
	return cmp.Or(
		cmp.Compare(a.Order, b.Order),
		collator.CompareString(a.Name, b.Name),
		cmp.Compare(a.ID, b.ID),
	)
}

// SortTerms sorts terms in sibling order in place.
func SortTerms(terms []*Term) {

	// A Collator keeps scratch buffers, so each sort gets its own
	collator := collate.New(nameLanguage)
	slices.SortFunc(terms, func(a, b *Term) int {
		return compareTerms(collator, a, b)
	})
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldOrder       = "order"
	FieldTaxonomyID  = "taxonomy_id"
	FieldFacetID     = "facet_id"
	FieldParentID    = "parent_id"
	FieldTerm        = "term"
)

// Column limits mirrored from the migrations.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 255
)
