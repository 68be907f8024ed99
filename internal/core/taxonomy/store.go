// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// # Hierarchy Access

// HierarchyReader is the read contract of the term hierarchy.
//
// Both the PostgreSQL repository and the in-memory [Hierarchy] implement it,
// so expansion and projection run unchanged against either.
type HierarchyReader interface {

	/*
		ChildrenOf returns the direct children of every given parent.

		Parameters:
		  - context: context.Context
		  - parentIDs: []int (Unknown ids are allowed)

		Returns:
		  - map[int][]int: parent id → child ids in sibling order; parents without children are absent
		  - error: Storage failures
	*/
	ChildrenOf(context context.Context, parentIDs []int) (map[int][]int, error)

	/*
		RootsOf returns the parentless terms of a facet in sibling order.

		Parameters:
		  - context: context.Context
		  - facetID: int

		Returns:
		  - []*Term: Root terms (empty for an unknown facet)
		  - error: Storage failures
	*/
	RootsOf(context context.Context, facetID int) ([]*Term, error)

	/*
		ChildTermsOf returns the full records of a term's direct children in sibling order.

		Parameters:
		  - context: context.Context
		  - parentID: int

		Returns:
		  - []*Term: Child terms (empty for leaves)
		  - error: Storage failures
	*/
	ChildTermsOf(context context.Context, parentID int) ([]*Term, error)
}

// # Catalog Data Access

// Repository defines the data access contract for taxonomies, facets and terms.
type Repository interface {
	HierarchyReader

	// ## Taxonomies

	ListTaxonomies(context context.Context) ([]*Taxonomy, error)
	GetTaxonomy(context context.Context, id int) (*Taxonomy, error)
	CreateTaxonomy(context context.Context, taxonomy *Taxonomy) error
	UpdateTaxonomy(context context.Context, taxonomy *Taxonomy) error

	/*
		DeleteTaxonomy removes a taxonomy. Its facets, terms and recipe
		associations are removed by cascading foreign keys.

		Returns:
		  - error: apperr NOT_FOUND if the taxonomy does not exist
	*/
	DeleteTaxonomy(context context.Context, id int) error

	// ## Facets

	/*
		ListFacets returns facets ordered by (order, name).

		Parameters:
		  - context: context.Context
		  - taxonomyID: *int (nil lists every facet)

		Returns:
		  - []*Facet: Matching facets
		  - error: Storage failures
	*/
	ListFacets(context context.Context, taxonomyID *int) ([]*Facet, error)
	GetFacet(context context.Context, id int) (*Facet, error)
	CreateFacet(context context.Context, facet *Facet) error
	UpdateFacet(context context.Context, facet *Facet) error
	DeleteFacet(context context.Context, id int) error

	// ## Terms

	/*
		ListTerms returns terms ordered by facet (order, name), then parent
		(roots first), then sibling order.

		Parameters:
		  - context: context.Context
		  - filter: TermFilter

		Returns:
		  - []*Term: Matching terms
		  - error: Storage failures
	*/
	ListTerms(context context.Context, filter TermFilter) ([]*Term, error)
	GetTerm(context context.Context, id int) (*Term, error)
	CreateTerm(context context.Context, term *Term) error
	UpdateTerm(context context.Context, term *Term) error

	/*
		DeleteTerm removes a term together with its whole subtree and the
		recipe associations of every removed term (cascading foreign keys).
	*/
	DeleteTerm(context context.Context, id int) error
}
