// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	require.NotEmpty(t, appError.Details)
	return appError.Details[0].Field
}

func TestService_ExpandTerms(t *testing.T) {
	repository, postre, pastel, helado := dessertCatalog()
	service := taxonomy.NewService(repository, discardLogger())

	ids, err := service.ExpandTerms(context.Background(), []int{postre.ID})
	require.NoError(t, err)
	assert.Equal(t, []int{postre.ID, helado.ID, pastel.ID}, ids)

	ids, err = service.ExpandTerms(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestService_Trees(t *testing.T) {
	repository, postre, pastel, _ := dessertCatalog()
	service := taxonomy.NewService(repository, discardLogger())
	ctx := context.Background()

	// Single facet
	tree, err := service.FacetTree(ctx, postre.FacetID)
	require.NoError(t, err)
	assert.Equal(t, "Tipo de plato", tree.Name)
	require.Len(t, tree.Terms, 1)
	assert.Equal(t, "Pastel", tree.Terms[0].Children[0].Name)

	// All facets
	trees, err := service.FacetsTree(ctx)
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Len(t, trees[1].Terms, 1)

	// Subtree
	node, err := service.TermTree(ctx, pastel.ID)
	require.NoError(t, err)
	assert.Empty(t, node.Children)

	// Roots across facets
	roots, err := service.RootTermsTree(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Postre", roots[0].Name)
	assert.Equal(t, "Pollo", roots[1].Name)

	// Unknown facet
	_, err = service.FacetTree(ctx, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_CreateTerm_Validation(t *testing.T) {
	repository, postre, _, _ := dessertCatalog()
	service := taxonomy.NewService(repository, discardLogger())
	ctx := context.Background()

	pollo := repository.terms[len(repository.terms)-1]

	tests := []struct {
		name  string
		term  *taxonomy.Term
		field string
	}{
		{"missing_name", &taxonomy.Term{FacetID: postre.FacetID}, taxonomy.FieldName},
		{"negative_order", &taxonomy.Term{FacetID: postre.FacetID, Name: "Flan", Order: -1}, taxonomy.FieldOrder},
		{"unknown_facet", &taxonomy.Term{FacetID: 404, Name: "Flan"}, taxonomy.FieldFacetID},
		{"unknown_parent", &taxonomy.Term{FacetID: postre.FacetID, ParentID: ptr(404), Name: "Flan"}, taxonomy.FieldParentID},
		{"parent_other_facet", &taxonomy.Term{FacetID: postre.FacetID, ParentID: ptr(pollo.ID), Name: "Flan"}, taxonomy.FieldParentID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateTerm(ctx, tt.term)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}

	flan := &taxonomy.Term{FacetID: postre.FacetID, ParentID: ptr(postre.ID), Name: "Flan", Order: 3}
	require.NoError(t, service.CreateTerm(ctx, flan))
	assert.NotZero(t, flan.ID)
}

func TestService_UpdateTerm_Reparenting(t *testing.T) {
	repository, postre, pastel, helado := dessertCatalog()
	service := taxonomy.NewService(repository, discardLogger())
	ctx := context.Background()

	// 1. Onto itself
	err := service.UpdateTerm(ctx, &taxonomy.Term{ID: pastel.ID, ParentID: ptr(pastel.ID), Name: "Pastel"})
	assert.Equal(t, taxonomy.FieldParentID, fieldOf(t, err))

	// 2. Under its own descendant
	err = service.UpdateTerm(ctx, &taxonomy.Term{ID: postre.ID, ParentID: ptr(helado.ID), Name: "Postre"})
	assert.Equal(t, taxonomy.FieldParentID, fieldOf(t, err))

	// 3. Into another facet
	err = service.UpdateTerm(ctx, &taxonomy.Term{ID: pastel.ID, FacetID: postre.FacetID + 1, Name: "Pastel"})
	assert.Equal(t, taxonomy.FieldFacetID, fieldOf(t, err))

	// 4. Valid move under a sibling; facet kept when omitted
	err = service.UpdateTerm(ctx, &taxonomy.Term{ID: helado.ID, ParentID: ptr(pastel.ID), Name: "Helado", Order: 2})
	require.NoError(t, err)

	moved, err := repository.GetTerm(ctx, helado.ID)
	require.NoError(t, err)
	assert.Equal(t, postre.FacetID, moved.FacetID)
	assert.Equal(t, pastel.ID, *moved.ParentID)

	// 5. Unknown term
	err = service.UpdateTerm(ctx, &taxonomy.Term{ID: 404, Name: "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_Facets(t *testing.T) {
	repository := newMemoryRepository()
	service := taxonomy.NewService(repository, discardLogger())
	ctx := context.Background()

	cocina := &taxonomy.Taxonomy{Name: "Cocina"}
	require.NoError(t, service.CreateTaxonomy(ctx, cocina))

	err := service.CreateTaxonomy(ctx, &taxonomy.Taxonomy{Name: "Cocina"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	err = service.CreateFacet(ctx, &taxonomy.Facet{TaxonomyID: 404, Name: "Tipo"})
	assert.Equal(t, taxonomy.FieldTaxonomyID, fieldOf(t, err))

	facet := &taxonomy.Facet{TaxonomyID: cocina.ID, Name: "Tipo"}
	require.NoError(t, service.CreateFacet(ctx, facet))

	facets, err := service.ListFacets(ctx, &cocina.ID)
	require.NoError(t, err)
	assert.Len(t, facets, 1)

	require.NoError(t, service.DeleteFacet(ctx, facet.ID))
	assert.True(t, apperr.HasCode(service.DeleteFacet(ctx, facet.ID), apperr.CodeNotFound))
}
