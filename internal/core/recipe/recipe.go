// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recipe owns recipes, their term assignments and images.

Listing goes through the [FilterPipeline]: free text matched as a
case-insensitive substring, and root terms expanded to their descendants
before matching. Details carry the recipe's terms grouped by facet.
*/
package recipe

import "time"

// # Core Entities

// Recipe is a catalog entry. Image holds the object key; ImageURL is resolved
// against the configured object store when the recipe is returned.
type Recipe struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Instructions    string    `json:"instructions"`
	IngredientsText string    `json:"ingredients_text"`
	Image           string    `json:"-"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Update carries the editable fields of a recipe. Nil fields are left unchanged.
type Update struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Instructions    *string `json:"instructions"`
	IngredientsText *string `json:"ingredients_text"`
}

// AssignedTerm is a term attached to a recipe, together with its owning facet.
type AssignedTerm struct {
	ID        int
	Name      string
	FacetID   int
	FacetName string
}

// TermRef is the compact term shape used inside facet groups.
type TermRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FacetTerms is one facet group of a recipe's terms.
type FacetTerms struct {
	FacetID   int       `json:"facet_id"`
	FacetName string    `json:"facet_name"`
	Terms     []TermRef `json:"terms"`
}

// Detail is a recipe with its terms grouped by facet.
type Detail struct {
	*Recipe
	FacetTerms []FacetTerms `json:"facet_terms"`
}

// # Field Identifiers

const (
	FieldTitle           = "title"
	FieldSlug            = "slug"
	FieldDescription     = "description"
	FieldInstructions    = "instructions"
	FieldIngredientsText = "ingredients_text"
	FieldTerm            = "term"
	FieldTermID          = "term_id"
	FieldTermIDs         = "term_ids"
	FieldImage           = "image"
	FieldQuery           = "q"
)

const (
	MaxTitleLength = 200
	MaxSlugLength  = 250

	// DefaultSlug is used when a title has no sluggable characters.
	DefaultSlug = "recipe"
)
