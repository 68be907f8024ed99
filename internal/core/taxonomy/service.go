// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/internal/platform/validate"
)

// # Service Layer

// Service orchestrates taxonomy management, descendant expansion and tree projection.
type Service struct {
	repo     Repository
	expander *Expander
	logger   *slog.Logger
}

// NewService constructs a new [Service]. Expansion reads children through repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expander: NewExpander(repo),
		logger:   logger,
	}
}

// Expander exposes the expansion engine for other domains (recipe filtering).
func (service *Service) Expander() *Expander {
	return service.expander
}

// # Expansion

/*
ExpandTerms returns the requested ids plus all of their descendants, ascending.

Parameters:
  - context: context.Context
  - ids: []int (Unknown ids are kept but contribute no descendants)

Returns:
  - []int: Sorted expanded id list (empty, never nil)
  - error: Storage failures
*/
func (service *Service) ExpandTerms(context context.Context, ids []int) ([]int, error) {
	set, err := service.expander.Expand(context, ids)
	if err != nil {
		return nil, err
	}
	return set.Sorted(), nil
}

// # Tree Views

/*
FacetTree projects one facet with its whole term forest.

Description: The facet's terms are loaded once and projected from an
in-memory [Hierarchy], so the response is built from a single read.
*/
func (service *Service) FacetTree(context context.Context, facetID int) (*FacetTree, error) {
	facet, err := service.repo.GetFacet(context, facetID)
	if err != nil {
		return nil, err
	}

	terms, err := service.repo.ListTerms(context, TermFilter{FacetID: &facetID})
	if err != nil {
		return nil, err
	}

	projector := NewTreeProjector(NewHierarchy(terms), constants.MaxTreeDepth)
	return projector.ProjectFacet(context, facet)
}

// FacetsTree projects every facet, ordered by (order, name), from one snapshot of all terms.
func (service *Service) FacetsTree(context context.Context) ([]*FacetTree, error) {
	facets, err := service.repo.ListFacets(context, nil)
	if err != nil {
		return nil, err
	}

	terms, err := service.repo.ListTerms(context, TermFilter{})
	if err != nil {
		return nil, err
	}

	projector := NewTreeProjector(NewHierarchy(terms), constants.MaxTreeDepth)
	return projector.ProjectAll(context, facets)
}

// TermTree projects the subtree under a single term, reading children from the store.
func (service *Service) TermTree(context context.Context, termID int) (*TermNode, error) {
	term, err := service.repo.GetTerm(context, termID)
	if err != nil {
		return nil, err
	}

	projector := NewTreeProjector(service.repo, constants.MaxTreeDepth)
	return projector.ProjectTerm(context, term)
}

/*
RootTermsTree projects every root term across all facets.

Description: Roots are ordered by their facet's (order, name) and then by
sibling order, which is the order [Repository.ListTerms] already returns.
*/
func (service *Service) RootTermsTree(context context.Context) ([]*TermNode, error) {
	terms, err := service.repo.ListTerms(context, TermFilter{})
	if err != nil {
		return nil, err
	}

	roots := make([]*Term, 0)
	for _, term := range terms {
		if term.IsRoot() {
			roots = append(roots, term)
		}
	}

	projector := NewTreeProjector(NewHierarchy(terms), constants.MaxTreeDepth)
	return projector.ProjectForest(context, roots)
}

// # Taxonomies

func (service *Service) ListTaxonomies(context context.Context) ([]*Taxonomy, error) {
	return service.repo.ListTaxonomies(context)
}

func (service *Service) GetTaxonomy(context context.Context, id int) (*Taxonomy, error) {
	return service.repo.GetTaxonomy(context, id)
}

func (service *Service) CreateTaxonomy(context context.Context, taxonomy *Taxonomy) error {
	if err := validateTaxonomy(taxonomy); err != nil {
		return err
	}

	if err := service.repo.CreateTaxonomy(context, taxonomy); err != nil {
		return err
	}

	service.logger.Info("taxonomy_created", slog.Int("taxonomy_id", taxonomy.ID))
	return nil
}

func (service *Service) UpdateTaxonomy(context context.Context, taxonomy *Taxonomy) error {
	if err := validateTaxonomy(taxonomy); err != nil {
		return err
	}
	return service.repo.UpdateTaxonomy(context, taxonomy)
}

func (service *Service) DeleteTaxonomy(context context.Context, id int) error {
	if err := service.repo.DeleteTaxonomy(context, id); err != nil {
		return err
	}

	service.logger.Warn("taxonomy_deleted", slog.Int("taxonomy_id", id))
	return nil
}

// # Facets

func (service *Service) ListFacets(context context.Context, taxonomyID *int) ([]*Facet, error) {
	return service.repo.ListFacets(context, taxonomyID)
}

func (service *Service) GetFacet(context context.Context, id int) (*Facet, error) {
	return service.repo.GetFacet(context, id)
}

/*
CreateFacet validates and stores a new facet.

Returns:
  - error: VALIDATION_ERROR for bad fields or an unknown taxonomy, CONFLICT for a
    duplicate name within the taxonomy
*/
func (service *Service) CreateFacet(context context.Context, facet *Facet) error {
	if err := service.validateFacet(context, facet); err != nil {
		return err
	}

	if err := service.repo.CreateFacet(context, facet); err != nil {
		return err
	}

	service.logger.Info("facet_created",
		slog.Int("facet_id", facet.ID),
		slog.Int("taxonomy_id", facet.TaxonomyID),
	)
	return nil
}

func (service *Service) UpdateFacet(context context.Context, facet *Facet) error {
	if err := service.validateFacet(context, facet); err != nil {
		return err
	}
	return service.repo.UpdateFacet(context, facet)
}

func (service *Service) DeleteFacet(context context.Context, id int) error {
	if err := service.repo.DeleteFacet(context, id); err != nil {
		return err
	}

	service.logger.Warn("facet_deleted", slog.Int("facet_id", id))
	return nil
}

// # Terms

func (service *Service) ListTerms(context context.Context, filter TermFilter) ([]*Term, error) {
	return service.repo.ListTerms(context, filter)
}

func (service *Service) GetTerm(context context.Context, id int) (*Term, error) {
	return service.repo.GetTerm(context, id)
}

/*
CreateTerm validates and stores a new term.

Description: The parent, when given, must exist and belong to the same facet.
A new term has no descendants yet, so it cannot close a cycle.

Returns:
  - error: VALIDATION_ERROR for bad fields or parent, CONFLICT for a duplicate
    (facet, name, parent)
*/
func (service *Service) CreateTerm(context context.Context, term *Term) error {
	if err := service.validateTerm(context, term, false); err != nil {
		return err
	}

	if err := service.repo.CreateTerm(context, term); err != nil {
		return err
	}

	service.logger.Info("term_created",
		slog.Int("term_id", term.ID),
		slog.Int("facet_id", term.FacetID),
	)
	return nil
}

/*
UpdateTerm replaces a term's name, description, order and parent.

Description: A term never moves between facets. Re-parenting is checked
against a snapshot of the facet so that the new parent is not the term
itself or one of its descendants.

Parameters:
  - context: context.Context
  - term: *Term (FacetID may be zero to keep the current facet)

Returns:
  - error: NOT_FOUND for an unknown term, VALIDATION_ERROR otherwise
*/
func (service *Service) UpdateTerm(context context.Context, term *Term) error {
	current, err := service.repo.GetTerm(context, term.ID)
	if err != nil {
		return err
	}

	if term.FacetID == 0 {
		term.FacetID = current.FacetID
	}
	if term.FacetID != current.FacetID {
		return validate.FieldError(FieldFacetID, "A term cannot be moved to another facet")
	}

	if err := service.validateTerm(context, term, true); err != nil {
		return err
	}

	if err := service.repo.UpdateTerm(context, term); err != nil {
		return err
	}

	service.logger.Info("term_updated", slog.Int("term_id", term.ID))
	return nil
}

// DeleteTerm removes a term, its subtree and their recipe associations.
func (service *Service) DeleteTerm(context context.Context, id int) error {
	if err := service.repo.DeleteTerm(context, id); err != nil {
		return err
	}

	service.logger.Warn("term_deleted", slog.Int("term_id", id))
	return nil
}

// # Validation

func validateTaxonomy(taxonomy *Taxonomy) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, taxonomy.Name).MaxLen(FieldName, taxonomy.Name, MaxNameLength)
	return validator.Err()
}

func (service *Service) validateFacet(context context.Context, facet *Facet) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, facet.Name).MaxLen(FieldName, facet.Name, MaxNameLength)
	validator.MaxLen(FieldDescription, facet.Description, MaxDescriptionLength)
	validator.Min(FieldOrder, facet.Order, 0)
	validator.Positive(FieldTaxonomyID, facet.TaxonomyID)

	if err := validator.Err(); err != nil {
		return err
	}

	// Owning taxonomy must exist
	if _, err := service.repo.GetTaxonomy(context, facet.TaxonomyID); err != nil {
		return asFieldError(err, FieldTaxonomyID, "Taxonomy does not exist")
	}

	return nil
}

func (service *Service) validateTerm(context context.Context, term *Term, existing bool) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, term.Name).MaxLen(FieldName, term.Name, MaxNameLength)
	validator.MaxLen(FieldDescription, term.Description, MaxDescriptionLength)
	validator.Min(FieldOrder, term.Order, 0)
	validator.Positive(FieldFacetID, term.FacetID)

	if existing && term.ParentID != nil {
		validator.Custom(FieldParentID, *term.ParentID == term.ID, "A term cannot be its own parent")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Owning facet must exist
	if _, err := service.repo.GetFacet(context, term.FacetID); err != nil {
		return asFieldError(err, FieldFacetID, "Facet does not exist")
	}

	if term.ParentID == nil {
		return nil
	}

	// Parent must exist and share the facet
	parent, err := service.repo.GetTerm(context, *term.ParentID)
	if err != nil {
		return asFieldError(err, FieldParentID, "Parent term does not exist")
	}
	if parent.FacetID != term.FacetID {
		return validate.FieldError(FieldParentID, "Parent term must belong to the same facet")
	}

	if !existing {
		return nil
	}

	// Re-parenting must not close a cycle
	siblings, err := service.repo.ListTerms(context, TermFilter{FacetID: &term.FacetID})
	if err != nil {
		return err
	}
	if NewHierarchy(siblings).WouldCycle(term.ID, *term.ParentID) {
		return validate.FieldError(FieldParentID, "Parent term cannot be a descendant of the term")
	}

	return nil
}

// asFieldError turns a NOT_FOUND lookup of a referenced row into a field error.
func asFieldError(err error, field, message string) error {
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return validate.FieldError(field, message)
	}
	return err
}
