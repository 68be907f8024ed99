// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
)

func TestHierarchy_SiblingOrder(t *testing.T) {
	ctx := context.Background()
	hierarchy := taxonomy.NewHierarchy([]*taxonomy.Term{
		{ID: 1, FacetID: 1, Name: "Postre", Order: 1},
		{ID: 2, FacetID: 1, ParentID: ptr(1), Name: "Tarta", Order: 2},
		{ID: 3, FacetID: 1, ParentID: ptr(1), Name: "Helado", Order: 2},
		{ID: 4, FacetID: 1, ParentID: ptr(1), Name: "Pastel", Order: 1},
		{ID: 5, FacetID: 1, Name: "Entrada", Order: 1},
	})

	children, err := hierarchy.ChildrenOf(ctx, []int{1, 4, 404})
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{1: {4, 3, 2}}, children)

	roots, err := hierarchy.RootsOf(ctx, 1)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Entrada", roots[0].Name)
	assert.Equal(t, "Postre", roots[1].Name)

	leaves, err := hierarchy.ChildTermsOf(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestHierarchy_SiblingCollation(t *testing.T) {
	hierarchy := taxonomy.NewHierarchy([]*taxonomy.Term{
		{ID: 1, FacetID: 1, Name: "Pasta", Order: 1},
		{ID: 2, FacetID: 1, Name: "Pollo", Order: 1},
		{ID: 3, FacetID: 1, Name: "arroz", Order: 1},
		{ID: 4, FacetID: 1, Name: "Ñoquis", Order: 1},
		{ID: 5, FacetID: 1, Name: "Zanahoria"},
	})

	roots, err := hierarchy.RootsOf(context.Background(), 1)
	require.NoError(t, err)

	names := make([]string, 0, len(roots))
	for _, root := range roots {
		names = append(names, root.Name)
	}
	assert.Equal(t, []string{"Zanahoria", "arroz", "Ñoquis", "Pasta", "Pollo"}, names)
}

func TestHierarchy_Ancestors(t *testing.T) {
	hierarchy := taxonomy.NewHierarchy(forest())

	assert.Equal(t, []int{4, 2, 1}, hierarchy.Ancestors(6))
	assert.Empty(t, hierarchy.Ancestors(1))
	assert.Empty(t, hierarchy.Ancestors(404))
}

func TestHierarchy_AncestorsStopOnCycle(t *testing.T) {
	hierarchy := taxonomy.NewHierarchy([]*taxonomy.Term{
		{ID: 1, FacetID: 1, ParentID: ptr(2), Name: "a"},
		{ID: 2, FacetID: 1, ParentID: ptr(1), Name: "b"},
	})

	assert.Equal(t, []int{2}, hierarchy.Ancestors(1))
}

func TestHierarchy_WouldCycle(t *testing.T) {
	hierarchy := taxonomy.NewHierarchy(forest())

	tests := []struct {
		name     string
		termID   int
		parentID int
		want     bool
	}{
		{"self", 2, 2, true},
		{"direct_child", 2, 4, true},
		{"deep_descendant", 1, 6, true},
		{"sibling_branch", 2, 5, false},
		{"other_facet_root", 4, 7, false},
		{"ancestor", 6, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hierarchy.WouldCycle(tt.termID, tt.parentID))
		})
	}
}
