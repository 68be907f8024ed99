// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"slices"
)

// Hierarchy is an immutable in-memory snapshot of one or more term forests.
//
// Terms are stored once by id; the parent → children and facet → roots
// indexes are derived at construction, already in sibling order.
type Hierarchy struct {
	terms    map[int]*Term
	children map[int][]int
	roots    map[int][]int
}

// NewHierarchy indexes terms. Terms whose parent is not part of the slice
// are kept but unreachable from any root.
func NewHierarchy(terms []*Term) *Hierarchy {
	sorted := slices.Clone(terms)
	SortTerms(sorted)

	hierarchy := &Hierarchy{
		terms:    make(map[int]*Term, len(sorted)),
		children: make(map[int][]int),
		roots:    make(map[int][]int),
	}

	for _, term := range sorted {
		hierarchy.terms[term.ID] = term
		if term.ParentID == nil {
			hierarchy.roots[term.FacetID] = append(hierarchy.roots[term.FacetID], term.ID)
			continue
		}
		hierarchy.children[*term.ParentID] = append(hierarchy.children[*term.ParentID], term.ID)
	}

	return hierarchy
}

// Term looks up a term by id.
func (hierarchy *Hierarchy) Term(id int) (*Term, bool) {
	term, found := hierarchy.terms[id]
	return term, found
}

// Len returns the number of terms in the snapshot.
func (hierarchy *Hierarchy) Len() int { return len(hierarchy.terms) }

// ChildrenOf implements [HierarchyReader].
func (hierarchy *Hierarchy) ChildrenOf(_ context.Context, parentIDs []int) (map[int][]int, error) {
	result := make(map[int][]int, len(parentIDs))
	for _, parentID := range parentIDs {
		if children := hierarchy.children[parentID]; len(children) > 0 {
			result[parentID] = slices.Clone(children)
		}
	}
	return result, nil
}

// RootsOf implements [HierarchyReader].
func (hierarchy *Hierarchy) RootsOf(_ context.Context, facetID int) ([]*Term, error) {
	return hierarchy.resolve(hierarchy.roots[facetID]), nil
}

// ChildTermsOf implements [HierarchyReader].
func (hierarchy *Hierarchy) ChildTermsOf(_ context.Context, parentID int) ([]*Term, error) {
	return hierarchy.resolve(hierarchy.children[parentID]), nil
}

// Ancestors returns the parent chain of id, nearest first. The walk stops at a
// root, at a parent missing from the snapshot, or when a cycle is detected.
func (hierarchy *Hierarchy) Ancestors(id int) []int {
	var chain []int
	seen := NewTermSet(id)

	current, found := hierarchy.terms[id]
	for found && current.ParentID != nil {
		parentID := *current.ParentID
		if !seen.Add(parentID) {
			break
		}
		chain = append(chain, parentID)
		current, found = hierarchy.terms[parentID]
	}

	return chain
}

// WouldCycle reports whether making parentID the parent of termID would put
// termID on its own ancestor chain.
func (hierarchy *Hierarchy) WouldCycle(termID, parentID int) bool {
	if termID == parentID {
		return true
	}
	return slices.Contains(hierarchy.Ancestors(parentID), termID)
}

func (hierarchy *Hierarchy) resolve(ids []int) []*Term {
	terms := make([]*Term, 0, len(ids))
	for _, id := range ids {
		terms = append(terms, hierarchy.terms[id])
	}
	return terms
}
