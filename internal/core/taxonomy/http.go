// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recetario/internal/platform/middleware"
	requestutil "github.com/taibuivan/recetario/internal/platform/request"
	"github.com/taibuivan/recetario/internal/platform/respond"
	"github.com/taibuivan/recetario/internal/platform/sec"
)

// # Handler Implementation

// Handler exposes taxonomies, facets, terms and their tree views over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a taxonomy [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the taxonomy endpoints to router.
//
// # Routing Strategy
//
//   - Reads (Public): listings, details, expansion and trees.
//   - Management (Restricted): requires [sec.RoleAdmin].
func (handler *Handler) RegisterRoutes(router chi.Router) {

	// ## Public Reads
	router.Get("/taxonomies", handler.listTaxonomies)
	router.Get("/taxonomies/{id}", handler.getTaxonomy)

	router.Get("/facets", handler.listFacets)
	router.Get("/facets/{id}", handler.getFacet)
	router.Get("/facets/{id}/tree", handler.facetTree)
	router.Get("/facets-terms-tree", handler.facetsTree)

	router.Get("/terms", handler.listTerms)
	router.Get("/terms/expand", handler.expandTerms)
	router.Get("/terms/{id}", handler.getTerm)
	router.Get("/terms/{id}/tree", handler.termTree)
	router.Get("/terms-tree", handler.rootTermsTree)

	// ## Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/taxonomies", handler.createTaxonomy)
		admin.Put("/taxonomies/{id}", handler.updateTaxonomy)
		admin.Delete("/taxonomies/{id}", handler.deleteTaxonomy)

		admin.Post("/facets", handler.createFacet)
		admin.Put("/facets/{id}", handler.updateFacet)
		admin.Delete("/facets/{id}", handler.deleteFacet)

		admin.Post("/terms", handler.createTerm)
		admin.Put("/terms/{id}", handler.updateTerm)
		admin.Delete("/terms/{id}", handler.deleteTerm)
	})
}

// # Request Payloads

type taxonomyRequest struct {
	Name string `json:"name"`
}

type facetRequest struct {
	TaxonomyID  int    `json:"taxonomy_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (payload facetRequest) facet(id int) *Facet {
	return &Facet{
		ID:          id,
		TaxonomyID:  payload.TaxonomyID,
		Name:        payload.Name,
		Description: payload.Description,
		Order:       payload.Order,
	}
}

type termRequest struct {
	FacetID     int    `json:"facet_id"`
	ParentID    *int   `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (payload termRequest) term(id int) *Term {
	return &Term{
		ID:          id,
		FacetID:     payload.FacetID,
		ParentID:    payload.ParentID,
		Name:        payload.Name,
		Description: payload.Description,
		Order:       payload.Order,
	}
}

// # Expansion & Trees

/*
GET /api/v1/terms/expand.

Description: Returns the requested term ids plus all of their descendants.

Request:
  - term: []int (Repeated or comma separated)

Response:
  - 200: []int: Expanded ids, ascending
  - 400: INVALID_INPUT for a non-numeric term
*/
func (handler *Handler) expandTerms(writer http.ResponseWriter, request *http.Request) {
	ids, err := requestutil.QueryInts(request, FieldTerm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expanded, err := handler.service.ExpandTerms(request.Context(), ids)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, expanded)
}

/*
GET /api/v1/facets/{id}/tree.

Response:
  - 200: FacetTree: The facet with its nested terms
  - 404: Facet not found
*/
func (handler *Handler) facetTree(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.service.FacetTree(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

/*
GET /api/v1/facets-terms-tree.

Response:
  - 200: []FacetTree: Every facet ordered by (order, name)
*/
func (handler *Handler) facetsTree(writer http.ResponseWriter, request *http.Request) {
	trees, err := handler.service.FacetsTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, trees)
}

/*
GET /api/v1/terms/{id}/tree.

Response:
  - 200: TermNode: The term with its nested descendants
  - 404: Term not found
  - 422: Hierarchy too deep or cyclic
*/
func (handler *Handler) termTree(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	node, err := handler.service.TermTree(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, node)
}

// GET /api/v1/terms-tree. Every root term across facets, projected.
func (handler *Handler) rootTermsTree(writer http.ResponseWriter, request *http.Request) {
	nodes, err := handler.service.RootTermsTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nodes)
}

// # Taxonomy Endpoints

func (handler *Handler) listTaxonomies(writer http.ResponseWriter, request *http.Request) {
	taxonomies, err := handler.service.ListTaxonomies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, taxonomies)
}

func (handler *Handler) getTaxonomy(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	taxonomy, err := handler.service.GetTaxonomy(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, taxonomy)
}

/*
POST /api/v1/taxonomies.

Request:
  - name: string

Response:
  - 201: Taxonomy
  - 409: Name already taken
*/
func (handler *Handler) createTaxonomy(writer http.ResponseWriter, request *http.Request) {
	var payload taxonomyRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taxonomy := &Taxonomy{Name: payload.Name}
	if err := handler.service.CreateTaxonomy(request.Context(), taxonomy); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, taxonomy)
}

func (handler *Handler) updateTaxonomy(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload taxonomyRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taxonomy := &Taxonomy{ID: id, Name: payload.Name}
	if err := handler.service.UpdateTaxonomy(request.Context(), taxonomy); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, taxonomy)
}

func (handler *Handler) deleteTaxonomy(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTaxonomy(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Facet Endpoints

/*
GET /api/v1/facets.

Request:
  - taxonomy: int (Optional owning taxonomy)

Response:
  - 200: []Facet: Ordered by (order, name)
*/
func (handler *Handler) listFacets(writer http.ResponseWriter, request *http.Request) {
	taxonomyID, err := requestutil.QueryInt(request, "taxonomy")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	facets, err := handler.service.ListFacets(request.Context(), taxonomyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, facets)
}

func (handler *Handler) getFacet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	facet, err := handler.service.GetFacet(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, facet)
}

func (handler *Handler) createFacet(writer http.ResponseWriter, request *http.Request) {
	var payload facetRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	facet := payload.facet(0)
	if err := handler.service.CreateFacet(request.Context(), facet); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, facet)
}

func (handler *Handler) updateFacet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload facetRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	facet := payload.facet(id)
	if err := handler.service.UpdateFacet(request.Context(), facet); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, facet)
}

func (handler *Handler) deleteFacet(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteFacet(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Term Endpoints

/*
GET /api/v1/terms.

Request:
  - facet: int (Optional owning facet)

Response:
  - 200: []Term: Ordered by facet, parent (roots first), then (order, name)
*/
func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	facetID, err := requestutil.QueryInt(request, "facet")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	terms, err := handler.service.ListTerms(request.Context(), TermFilter{FacetID: facetID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, terms)
}

func (handler *Handler) getTerm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.GetTerm(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, term)
}

/*
POST /api/v1/terms.

Request:
  - facet_id: int
  - parent_id: int (Optional, same facet)
  - name: string
  - description: string
  - order: int

Response:
  - 201: Term
  - 400: VALIDATION_ERROR (bad parent, unknown facet, ...)
  - 409: Duplicate (facet, name, parent)
*/
func (handler *Handler) createTerm(writer http.ResponseWriter, request *http.Request) {
	var payload termRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term := payload.term(0)
	if err := handler.service.CreateTerm(request.Context(), term); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, term)
}

func (handler *Handler) updateTerm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload termRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term := payload.term(id)
	if err := handler.service.UpdateTerm(request.Context(), term); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, term)
}

func (handler *Handler) deleteTerm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTerm(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
