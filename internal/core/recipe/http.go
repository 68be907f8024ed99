// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/middleware"
	requestutil "github.com/taibuivan/recetario/internal/platform/request"
	"github.com/taibuivan/recetario/internal/platform/respond"
	"github.com/taibuivan/recetario/internal/platform/sec"
	"github.com/taibuivan/recetario/internal/platform/validate"
	"github.com/taibuivan/recetario/pkg/pagination"
)

// # Handler Implementation

// Handler implements the recipe REST endpoints.
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler constructs a recipe [Handler]. Image uploads above maxUploadBytes are refused.
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Routes returns a [chi.Router] with the recipe endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): listing with filters and detail by slug.
//   - Editing (Restricted): requires [sec.RoleEditor] or higher.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listRecipes)
	router.Get("/{slug}", handler.getRecipe)

	// ## Editing (Editor Protected)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.createRecipe)
		editor.Patch("/{slug}", handler.updateRecipe)
		editor.Delete("/{slug}", handler.deleteRecipe)

		// Terms
		editor.Put("/{slug}/terms", handler.replaceTerms)
		editor.Post("/{slug}/terms", handler.addTerm)
		editor.Delete("/{slug}/terms/{termID}", handler.removeTerm)

		// Image
		editor.Put("/{slug}/image", handler.uploadImage)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	IngredientsText string `json:"ingredients_text"`
	TermIDs         []int  `json:"term_ids"`
}

type replaceTermsRequest struct {
	TermIDs []int `json:"term_ids"`
}

type addTermRequest struct {
	TermID int `json:"term_id"`
}

// # Discovery Endpoints

/*
GET /api/v1/recipes.

Description: Lists recipes matching the free text and any of the given
terms or their descendants.

Request:
  - q: string (Case-insensitive substring)
  - term: []int (Repeated or comma separated)
  - page: int
  - limit: int

Response:
  - 200: []Recipe: Paginated, ordered by id
  - 400: INVALID_INPUT for a non-numeric term
*/
func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	termIDs, err := requestutil.QueryInts(request, FieldTerm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipes, meta, err := handler.service.List(request.Context(),
		request.URL.Query().Get(FieldQuery), termIDs, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, recipes, meta)
}

/*
GET /api/v1/recipes/{slug}.

Response:
  - 200: Detail: Recipe with facet_terms
  - 404: Recipe not found
*/
func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Detail(request.Context(), requestutil.Param(request, FieldSlug))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

// # Editing Endpoints

/*
POST /api/v1/recipes.

Request:
  - title: string
  - description, instructions, ingredients_text: string
  - term_ids: []int (Optional initial terms)

Response:
  - 201: Detail: The created recipe with its generated slug
  - 422: A term id does not exist; nothing is created
*/
func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe := &Recipe{
		Title:           payload.Title,
		Description:     payload.Description,
		Instructions:    payload.Instructions,
		IngredientsText: payload.IngredientsText,
	}
	if err := handler.service.Create(request.Context(), recipe, payload.TermIDs...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail := &Detail{Recipe: recipe, FacetTerms: []FacetTerms{}}
	if len(payload.TermIDs) > 0 {
		var err error
		if detail, err = handler.service.Detail(request.Context(), recipe.Slug); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}
	respond.Created(writer, detail)
}

// PATCH /api/v1/recipes/{slug}. Partial update; the slug never changes.
func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	var changes Update
	if err := requestutil.DecodeJSON(request, &changes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.Update(request.Context(), requestutil.Param(request, FieldSlug), changes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}

func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, FieldSlug)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Term Endpoints

/*
PUT /api/v1/recipes/{slug}/terms.

Request:
  - term_ids: []int (The complete new set)

Response:
  - 200: Detail
  - 422: A term does not exist
*/
func (handler *Handler) replaceTerms(writer http.ResponseWriter, request *http.Request) {
	var payload replaceTermsRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.ReplaceTerms(request.Context(), requestutil.Param(request, FieldSlug), payload.TermIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

/*
POST /api/v1/recipes/{slug}/terms.

Request:
  - term_id: int

Response:
  - 201: Detail
  - 409: Term already assigned
*/
func (handler *Handler) addTerm(writer http.ResponseWriter, request *http.Request) {
	var payload addTermRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.AddTerm(request.Context(), requestutil.Param(request, FieldSlug), payload.TermID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, detail)
}

func (handler *Handler) removeTerm(writer http.ResponseWriter, request *http.Request) {
	termID, err := requestutil.IntParam(request, "termID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveTerm(request.Context(), requestutil.Param(request, FieldSlug), termID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Image Endpoint

/*
PUT /api/v1/recipes/{slug}/image.

Request:
  - image: multipart file

Response:
  - 200: Recipe: With the new image_url
  - 400: Missing file or not an image
  - 413: Upload too large
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	if request.ContentLength > handler.maxUploadBytes {
		respond.Error(writer, request, apperr.PayloadTooLarge(handler.maxUploadBytes))
		return
	}
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes)

	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge(handler.maxUploadBytes))
			return
		}
		respond.Error(writer, request, validate.FieldError(FieldImage, "Expected a multipart form"))
		return
	}
	defer request.MultipartForm.RemoveAll()

	file, header, err := request.FormFile(FieldImage)
	if err != nil {
		respond.Error(writer, request, validate.FieldError(FieldImage, "This field is required"))
		return
	}
	defer file.Close()

	recipe, err := handler.service.UploadImage(request.Context(),
		requestutil.Param(request, FieldSlug), header.Filename, file, header.Size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}
