// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"slices"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/apperr"
)

// memoryRepository is an in-memory [taxonomy.Repository] for service and handler tests.
type memoryRepository struct {
	taxonomies []*taxonomy.Taxonomy
	facets     []*taxonomy.Facet
	terms      []*taxonomy.Term
	nextID     int

	// childLookups counts ChildrenOf round trips.
	childLookups int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1}
}

func (repository *memoryRepository) id() int {
	id := repository.nextID
	repository.nextID++
	return id
}

// # Seeding helpers

func (repository *memoryRepository) addTaxonomy(name string) *taxonomy.Taxonomy {
	item := &taxonomy.Taxonomy{ID: repository.id(), Name: name}
	repository.taxonomies = append(repository.taxonomies, item)
	return item
}

func (repository *memoryRepository) addFacet(taxonomyID int, name string, order int) *taxonomy.Facet {
	item := &taxonomy.Facet{ID: repository.id(), TaxonomyID: taxonomyID, Name: name, Order: order}
	repository.facets = append(repository.facets, item)
	return item
}

func (repository *memoryRepository) addTerm(facetID int, parent *taxonomy.Term, name string, order int) *taxonomy.Term {
	item := &taxonomy.Term{ID: repository.id(), FacetID: facetID, Name: name, Order: order}
	if parent != nil {
		parentID := parent.ID
		item.ParentID = &parentID
	}
	repository.terms = append(repository.terms, item)
	return item
}

func (repository *memoryRepository) snapshot() *taxonomy.Hierarchy {
	return taxonomy.NewHierarchy(repository.terms)
}

// # HierarchyReader

func (repository *memoryRepository) ChildrenOf(context context.Context, parentIDs []int) (map[int][]int, error) {
	repository.childLookups++
	return repository.snapshot().ChildrenOf(context, parentIDs)
}

func (repository *memoryRepository) RootsOf(context context.Context, facetID int) ([]*taxonomy.Term, error) {
	return repository.snapshot().RootsOf(context, facetID)
}

func (repository *memoryRepository) ChildTermsOf(context context.Context, parentID int) ([]*taxonomy.Term, error) {
	return repository.snapshot().ChildTermsOf(context, parentID)
}

// # Taxonomies

func (repository *memoryRepository) ListTaxonomies(context.Context) ([]*taxonomy.Taxonomy, error) {
	return slices.Clone(repository.taxonomies), nil
}

func (repository *memoryRepository) GetTaxonomy(_ context.Context, id int) (*taxonomy.Taxonomy, error) {
	for _, item := range repository.taxonomies {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Taxonomy")
}

func (repository *memoryRepository) CreateTaxonomy(_ context.Context, item *taxonomy.Taxonomy) error {
	for _, existing := range repository.taxonomies {
		if existing.Name == item.Name {
			return apperr.Conflict("Taxonomy already exists")
		}
	}
	item.ID = repository.id()
	repository.taxonomies = append(repository.taxonomies, item)
	return nil
}

func (repository *memoryRepository) UpdateTaxonomy(context context.Context, item *taxonomy.Taxonomy) error {
	existing, err := repository.GetTaxonomy(context, item.ID)
	if err != nil {
		return err
	}
	*existing = *item
	return nil
}

func (repository *memoryRepository) DeleteTaxonomy(_ context.Context, id int) error {
	before := len(repository.taxonomies)
	repository.taxonomies = slices.DeleteFunc(repository.taxonomies, func(item *taxonomy.Taxonomy) bool { return item.ID == id })
	if len(repository.taxonomies) == before {
		return apperr.NotFound("Taxonomy")
	}
	return nil
}

// # Facets

func (repository *memoryRepository) ListFacets(_ context.Context, taxonomyID *int) ([]*taxonomy.Facet, error) {
	facets := make([]*taxonomy.Facet, 0)
	for _, item := range repository.facets {
		if taxonomyID == nil || item.TaxonomyID == *taxonomyID {
			facets = append(facets, item)
		}
	}
	slices.SortFunc(facets, func(a, b *taxonomy.Facet) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return facets, nil
}

func (repository *memoryRepository) GetFacet(_ context.Context, id int) (*taxonomy.Facet, error) {
	for _, item := range repository.facets {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Facet")
}

func (repository *memoryRepository) CreateFacet(_ context.Context, item *taxonomy.Facet) error {
	item.ID = repository.id()
	repository.facets = append(repository.facets, item)
	return nil
}

func (repository *memoryRepository) UpdateFacet(context context.Context, item *taxonomy.Facet) error {
	existing, err := repository.GetFacet(context, item.ID)
	if err != nil {
		return err
	}
	*existing = *item
	return nil
}

func (repository *memoryRepository) DeleteFacet(_ context.Context, id int) error {
	before := len(repository.facets)
	repository.facets = slices.DeleteFunc(repository.facets, func(item *taxonomy.Facet) bool { return item.ID == id })
	if len(repository.facets) == before {
		return apperr.NotFound("Facet")
	}
	return nil
}

// # Terms

// ListTerms orders like the PostgreSQL store: facet, roots first, then sibling order.
func (repository *memoryRepository) ListTerms(context context.Context, filter taxonomy.TermFilter) ([]*taxonomy.Term, error) {
	facets, _ := repository.ListFacets(context, nil)
	snapshot := repository.snapshot()

	terms := make([]*taxonomy.Term, 0)
	for _, facet := range facets {
		if filter.FacetID != nil && *filter.FacetID != facet.ID {
			continue
		}

		roots, _ := snapshot.RootsOf(context, facet.ID)
		queue := roots
		for len(queue) > 0 {
			term := queue[0]
			queue = queue[1:]

			switch {
			case filter.RootsOnly && !term.IsRoot():
			case filter.ParentID != nil && (term.ParentID == nil || *term.ParentID != *filter.ParentID):
			default:
				terms = append(terms, term)
			}

			children, _ := snapshot.ChildTermsOf(context, term.ID)
			queue = append(queue, children...)
		}
	}
	return terms, nil
}

func (repository *memoryRepository) GetTerm(_ context.Context, id int) (*taxonomy.Term, error) {
	for _, item := range repository.terms {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Term")
}

func (repository *memoryRepository) CreateTerm(_ context.Context, item *taxonomy.Term) error {
	item.ID = repository.id()
	repository.terms = append(repository.terms, item)
	return nil
}

func (repository *memoryRepository) UpdateTerm(context context.Context, item *taxonomy.Term) error {
	existing, err := repository.GetTerm(context, item.ID)
	if err != nil {
		return err
	}
	*existing = *item
	return nil
}

func (repository *memoryRepository) DeleteTerm(_ context.Context, id int) error {
	before := len(repository.terms)
	repository.terms = slices.DeleteFunc(repository.terms, func(item *taxonomy.Term) bool { return item.ID == id })
	if len(repository.terms) == before {
		return apperr.NotFound("Term")
	}
	return nil
}

// dessertCatalog seeds Postre → {Pastel, Helado} plus an unrelated Principal facet.
func dessertCatalog() (repository *memoryRepository, postre, pastel, helado *taxonomy.Term) {
	repository = newMemoryRepository()
	cocina := repository.addTaxonomy("Cocina")
	tipo := repository.addFacet(cocina.ID, "Tipo de plato", 1)
	principal := repository.addFacet(cocina.ID, "Ingrediente principal", 2)

	postre = repository.addTerm(tipo.ID, nil, "Postre", 1)
	helado = repository.addTerm(tipo.ID, postre, "Helado", 2)
	pastel = repository.addTerm(tipo.ID, postre, "Pastel", 1)

	repository.addTerm(principal.ID, nil, "Pollo", 1)
	return repository, postre, pastel, helado
}
