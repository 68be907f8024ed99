// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"

	"github.com/taibuivan/recetario/internal/platform/apperr"
)

// ErrHierarchyTooDeep is returned when a projection exceeds the depth limit,
// which on valid data only happens if the stored parent links form a cycle.
var ErrHierarchyTooDeep = apperr.Unprocessable("Term hierarchy is too deep or contains a cycle")

// TreeProjector renders terms as nested [TermNode]s, children in sibling order.
type TreeProjector struct {
	reader   HierarchyReader
	maxDepth int
}

// NewTreeProjector creates a projector over reader that refuses to descend
// more than maxDepth levels.
func NewTreeProjector(reader HierarchyReader, maxDepth int) *TreeProjector {
	return &TreeProjector{reader: reader, maxDepth: maxDepth}
}

// ProjectTerm returns the subtree rooted at term. Leaves get an empty, non-nil children list.
func (projector *TreeProjector) ProjectTerm(context context.Context, term *Term) (*TermNode, error) {
	return projector.project(context, term, 1)
}

// ProjectForest projects each term in the given order.
func (projector *TreeProjector) ProjectForest(context context.Context, terms []*Term) ([]*TermNode, error) {
	nodes := make([]*TermNode, 0, len(terms))
	for _, term := range terms {
		node, err := projector.project(context, term, 1)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ProjectFacet wraps the projection of a facet's root terms with the facet's own fields.
func (projector *TreeProjector) ProjectFacet(context context.Context, facet *Facet) (*FacetTree, error) {
	roots, err := projector.reader.RootsOf(context, facet.ID)
	if err != nil {
		return nil, err
	}

	terms, err := projector.ProjectForest(context, roots)
	if err != nil {
		return nil, err
	}

	return &FacetTree{
		ID:          facet.ID,
		Name:        facet.Name,
		Description: facet.Description,
		Order:       facet.Order,
		Terms:       terms,
	}, nil
}

// ProjectAll projects every facet in the given order.
func (projector *TreeProjector) ProjectAll(context context.Context, facets []*Facet) ([]*FacetTree, error) {
	trees := make([]*FacetTree, 0, len(facets))
	for _, facet := range facets {
		tree, err := projector.ProjectFacet(context, facet)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func (projector *TreeProjector) project(context context.Context, term *Term, depth int) (*TermNode, error) {
	if depth > projector.maxDepth {
		return nil, ErrHierarchyTooDeep
	}

	children, err := projector.reader.ChildTermsOf(context, term.ID)
	if err != nil {
		return nil, err
	}

	node := &TermNode{
		ID:          term.ID,
		Name:        term.Name,
		Description: term.Description,
		Order:       term.Order,
		Children:    make([]*TermNode, 0, len(children)),
	}

	for _, child := range children {
		childNode, err := projector.project(context, child, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}

	return node, nil
}
