// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import "context"

// # Recipe Data Access

// Repository defines the data access contract for recipes and their terms.
type Repository interface {

	/*
		List returns recipes matching criteria, ordered by id.

		Parameters:
		  - context: context.Context
		  - criteria: Criteria (Zero value lists everything)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Recipe: The page of recipes, each appearing once
		  - int: Total number of matches
		  - error: Storage failures
	*/
	List(context context.Context, criteria Criteria, limit, offset int) ([]*Recipe, int, error)

	/*
		FindBySlug fetches a recipe by its unique slug.

		Returns:
		  - *Recipe: The recipe
		  - error: apperr NOT_FOUND when no recipe has the slug
	*/
	FindBySlug(context context.Context, slug string) (*Recipe, error)

	// SlugExists reports whether any recipe already uses slug.
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Create inserts recipe together with its initial terms and fills ID and
		timestamps. Nothing is stored unless every row is.

		Returns:
		  - error: CONFLICT for a taken slug, UNPROCESSABLE for an unknown term
	*/
	Create(context context.Context, recipe *Recipe, termIDs []int) error

	// Update stores the editable fields and refreshes UpdatedAt. The slug is never rewritten.
	Update(context context.Context, recipe *Recipe) error

	// Delete removes a recipe; its term associations cascade.
	Delete(context context.Context, id int) error

	// SetImage records the object key of the recipe's image.
	SetImage(context context.Context, id int, key string) error

	// ## Term Assignments

	/*
		TermsOf returns a recipe's terms with their facets, in assignment order.
	*/
	TermsOf(context context.Context, recipeID int) ([]AssignedTerm, error)

	// ReplaceTerms atomically sets the recipe's term set.
	ReplaceTerms(context context.Context, recipeID int, termIDs []int) error

	// AddTerm assigns one term. A duplicate assignment is a CONFLICT.
	AddTerm(context context.Context, recipeID, termID int) error

	// RemoveTerm unassigns one term; NOT_FOUND when it was not assigned.
	RemoveTerm(context context.Context, recipeID, termID int) error
}
