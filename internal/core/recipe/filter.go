// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"strings"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
)

// TermExpander resolves root term ids to the ids of their whole subtrees.
type TermExpander interface {
	Expand(context context.Context, roots []int) (taxonomy.TermSet, error)
}

// Criteria is a compiled recipe filter. The zero value matches every recipe.
type Criteria struct {

	// Text is the trimmed search string; empty disables the text predicate.
	Text string

	// Terms is the expanded term set; nil disables the term predicate.
	// A non-nil empty set never happens: a term filter always carries its roots.
	Terms taxonomy.TermSet
}

// HasText reports whether the text predicate applies.
func (criteria Criteria) HasText() bool { return criteria.Text != "" }

// HasTerms reports whether the term predicate applies.
func (criteria Criteria) HasTerms() bool { return criteria.Terms != nil }

// Match evaluates the filter against a recipe and the ids of its assigned terms.
// It is the in-memory form of the predicate [PostgresRepository.List] compiles
// to SQL, and the two must select the same recipes.
func (criteria Criteria) Match(recipe *Recipe, termIDs []int) bool {
	if criteria.HasText() && !criteria.matchText(recipe) {
		return false
	}

	if !criteria.HasTerms() {
		return true
	}

	for _, id := range termIDs {
		if criteria.Terms.Has(id) {
			return true
		}
	}
	return false
}

func (criteria Criteria) matchText(recipe *Recipe) bool {
	needle := strings.ToLower(criteria.Text)
	for _, field := range []string{recipe.Title, recipe.Description, recipe.IngredientsText, recipe.Instructions} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterPipeline turns raw listing input into [Criteria].
type FilterPipeline struct {
	expander TermExpander
}

// NewFilterPipeline creates a pipeline that expands term filters with expander.
func NewFilterPipeline(expander TermExpander) *FilterPipeline {
	return &FilterPipeline{expander: expander}
}

/*
Build compiles text and root term ids into [Criteria].

Parameters:
  - context: context.Context
  - text: string (Trimmed; empty means no text filter)
  - rootIDs: []int (Empty means no term filter; unknown ids match nothing)

Returns:
  - Criteria: The compiled filter
  - error: Storage failures during expansion
*/
func (pipeline *FilterPipeline) Build(context context.Context, text string, rootIDs []int) (Criteria, error) {
	criteria := Criteria{Text: strings.TrimSpace(text)}

	if len(rootIDs) == 0 {
		return criteria, nil
	}

	expanded, err := pipeline.expander.Expand(context, rootIDs)
	if err != nil {
		return Criteria{}, err
	}
	criteria.Terms = expanded

	return criteria, nil
}
