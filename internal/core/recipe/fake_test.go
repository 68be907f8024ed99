// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/apperr"
)

// memoryRepository is an in-memory [recipe.Repository] evaluating [recipe.Criteria.Match].
type memoryRepository struct {
	recipes     []*recipe.Recipe
	assignments map[int][]int
	catalog     map[int]recipe.AssignedTerm
	nextID      int

	// stolenSlugs makes the next Create calls fail as if another request won the slug.
	stolenSlugs int
}

func newMemoryRepository(terms ...recipe.AssignedTerm) *memoryRepository {
	repository := &memoryRepository{
		assignments: make(map[int][]int),
		catalog:     make(map[int]recipe.AssignedTerm),
		nextID:      1,
	}
	for _, term := range terms {
		repository.catalog[term.ID] = term
	}
	return repository
}

func (repository *memoryRepository) add(title, slug string, termIDs ...int) *recipe.Recipe {
	item := &recipe.Recipe{ID: repository.nextID, Title: title, Slug: slug}
	repository.nextID++
	repository.recipes = append(repository.recipes, item)
	repository.assignments[item.ID] = termIDs
	return item
}

func (repository *memoryRepository) List(_ context.Context, criteria recipe.Criteria, limit, offset int) ([]*recipe.Recipe, int, error) {
	matches := make([]*recipe.Recipe, 0)
	for _, item := range repository.recipes {
		if criteria.Match(item, repository.assignments[item.ID]) {
			matches = append(matches, item)
		}
	}
	slices.SortFunc(matches, func(a, b *recipe.Recipe) int { return a.ID - b.ID })

	total := len(matches)
	if offset >= total {
		return []*recipe.Recipe{}, total, nil
	}
	return matches[offset:min(offset+limit, total)], total, nil
}

func (repository *memoryRepository) FindBySlug(_ context.Context, slug string) (*recipe.Recipe, error) {
	for _, item := range repository.recipes {
		if item.Slug == slug {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Recipe")
}

func (repository *memoryRepository) SlugExists(context context.Context, slug string) (bool, error) {
	_, err := repository.FindBySlug(context, slug)
	return err == nil, nil
}

func (repository *memoryRepository) Create(context context.Context, item *recipe.Recipe, termIDs []int) error {
	if repository.stolenSlugs > 0 {
		repository.stolenSlugs--
		repository.recipes = append(repository.recipes, &recipe.Recipe{ID: 1000 + repository.stolenSlugs, Title: item.Title, Slug: item.Slug})
		return apperr.Conflict("duplicate slug")
	}
	if exists, _ := repository.SlugExists(context, item.Slug); exists {
		return apperr.Conflict("duplicate slug")
	}
	for _, id := range termIDs {
		if _, found := repository.catalog[id]; !found {
			return apperr.Unprocessable("Referenced resource does not exist")
		}
	}

	item.ID = repository.nextID
	repository.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	repository.recipes = append(repository.recipes, item)
	repository.assignments[item.ID] = slices.Clone(termIDs)
	return nil
}

func (repository *memoryRepository) byID(id int) (*recipe.Recipe, error) {
	for _, item := range repository.recipes {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Recipe")
}

func (repository *memoryRepository) Update(_ context.Context, item *recipe.Recipe) error {
	existing, err := repository.byID(item.ID)
	if err != nil {
		return err
	}
	slug := existing.Slug
	*existing = *item
	existing.Slug = slug
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int) error {
	if _, err := repository.byID(id); err != nil {
		return err
	}
	repository.recipes = slices.DeleteFunc(repository.recipes, func(item *recipe.Recipe) bool { return item.ID == id })
	delete(repository.assignments, id)
	return nil
}

func (repository *memoryRepository) SetImage(_ context.Context, id int, key string) error {
	existing, err := repository.byID(id)
	if err != nil {
		return err
	}
	existing.Image = key
	return nil
}

func (repository *memoryRepository) TermsOf(_ context.Context, recipeID int) ([]recipe.AssignedTerm, error) {
	terms := make([]recipe.AssignedTerm, 0)
	for _, id := range repository.assignments[recipeID] {
		terms = append(terms, repository.catalog[id])
	}
	return terms, nil
}

func (repository *memoryRepository) ReplaceTerms(_ context.Context, recipeID int, termIDs []int) error {
	for _, id := range termIDs {
		if _, found := repository.catalog[id]; !found {
			return apperr.Unprocessable("Referenced resource does not exist")
		}
	}
	repository.assignments[recipeID] = slices.Clone(termIDs)
	return nil
}

func (repository *memoryRepository) AddTerm(_ context.Context, recipeID, termID int) error {
	if _, found := repository.catalog[termID]; !found {
		return apperr.Unprocessable("Referenced resource does not exist")
	}
	if slices.Contains(repository.assignments[recipeID], termID) {
		return apperr.Conflict("A record with the same unique values already exists")
	}
	repository.assignments[recipeID] = append(repository.assignments[recipeID], termID)
	return nil
}

func (repository *memoryRepository) RemoveTerm(_ context.Context, recipeID, termID int) error {
	before := len(repository.assignments[recipeID])
	repository.assignments[recipeID] = slices.DeleteFunc(repository.assignments[recipeID], func(id int) bool { return id == termID })
	if len(repository.assignments[recipeID]) == before {
		return apperr.NotFound("Recipe term")
	}
	return nil
}

// # Fixtures

// Term ids of the dessert fixture.
const (
	postreID = 1
	pastelID = 2
	heladoID = 3
	polloID  = 4
)

var (
	tipoFacet        = recipe.AssignedTerm{FacetID: 10, FacetName: "Tipo de plato"}
	ingredienteFacet = recipe.AssignedTerm{FacetID: 20, FacetName: "Ingrediente principal"}
)

func assigned(facet recipe.AssignedTerm, id int, name string) recipe.AssignedTerm {
	facet.ID = id
	facet.Name = name
	return facet
}

// dessertExpander expands over Postre → {Pastel, Helado}; Pollo stands alone.
func dessertExpander() *taxonomy.Expander {
	parent := postreID
	return taxonomy.NewExpander(taxonomy.NewHierarchy([]*taxonomy.Term{
		{ID: postreID, FacetID: 10, Name: "Postre", Order: 1},
		{ID: pastelID, FacetID: 10, ParentID: &parent, Name: "Pastel", Order: 1},
		{ID: heladoID, FacetID: 10, ParentID: &parent, Name: "Helado", Order: 2},
		{ID: polloID, FacetID: 20, Name: "Pollo", Order: 1},
	}))
}

// dessertRecipes seeds R1 (Pastel), R2 (Postre), R3 (Helado) and an untagged R4.
func dessertRecipes() *memoryRepository {
	repository := newMemoryRepository(
		assigned(tipoFacet, postreID, "Postre"),
		assigned(tipoFacet, pastelID, "Pastel"),
		assigned(tipoFacet, heladoID, "Helado"),
		assigned(ingredienteFacet, polloID, "Pollo"),
	)
	repository.add("Pastel de chocolate", "pastel-de-chocolate", pastelID)
	repository.add("Postre de la casa", "postre-de-la-casa", postreID)
	repository.add("Helado de vainilla", "helado-de-vainilla", heladoID)
	repository.add("Pollo al horno", "pollo-al-horno")
	return repository
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
