// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web renders the server-side HTML catalog.

The listing and detail pages run through the same recipe and taxonomy services
as the JSON API, so filtering by a term includes its descendants here too.
*/
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/recetario/internal/platform/request"
	"github.com/taibuivan/recetario/pkg/pagination"
)

//go:embed templates/*.html
var files embed.FS

// # Dependencies

// RecipeReader is the subset of the recipe service the pages need.
type RecipeReader interface {
	List(context context.Context, text string, rootIDs []int, page pagination.Params) ([]*recipe.Recipe, pagination.Meta, error)
	Detail(context context.Context, slug string) (*recipe.Detail, error)
}

// FacetTreeReader supplies the sidebar of facets and their term trees.
type FacetTreeReader interface {
	FacetsTree(context context.Context) ([]*taxonomy.FacetTree, error)
}

// # Handler

// Handler serves the HTML pages.
type Handler struct {
	recipes RecipeReader
	facets  FacetTreeReader
	logger  *slog.Logger
	pages   map[string]*template.Template
}

// NewHandler parses the embedded templates. It panics if they are malformed.
func NewHandler(recipes RecipeReader, facets FacetTreeReader, logger *slog.Logger) *Handler {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageList, pageDetail, pageError} {
		pages[name] = template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name))
	}
	return &Handler{recipes: recipes, facets: facets, logger: logger, pages: pages}
}

// Routes returns the page router, meant to be mounted at /recipes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPage)
	router.Get("/{slug}", handler.detailPage)
	router.Get("/{slug}/", handler.detailPage)
	return router
}

const (
	pageList   = "list.html"
	pageDetail = "detail.html"
	pageError  = "error.html"
)

var funcs = template.FuncMap{
	// node pairs a tree node with the selected ids for the recursive "term" template.
	"node": func(term *taxonomy.TermNode, selected map[int]bool) termView {
		return termView{Node: term, Selected: selected}
	},
}

type termView struct {
	Node     *taxonomy.TermNode
	Selected map[int]bool
}

type listView struct {
	Query    string
	Recipes  []*recipe.Recipe
	Facets   []*taxonomy.FacetTree
	Selected map[int]bool
	Meta     pagination.Meta
	PrevURL  string
	NextURL  string
}

type detailView struct {
	Recipe *recipe.Detail
}

type errorView struct {
	Status  int
	Message string
}

// # Pages

// listPage renders GET /recipes/?q=...&term=...
func (handler *Handler) listPage(writer http.ResponseWriter, request *http.Request) {
	termIDs, err := requestutil.QueryInts(request, recipe.FieldTerm)
	if err != nil {
		handler.renderError(writer, request, err)
		return
	}

	query := request.URL.Query().Get(recipe.FieldQuery)
	page := pagination.FromRequest(request)

	recipes, meta, err := handler.recipes.List(request.Context(), query, termIDs, page)
	if err != nil {
		handler.renderError(writer, request, err)
		return
	}

	facets, err := handler.facets.FacetsTree(request.Context())
	if err != nil {
		handler.renderError(writer, request, err)
		return
	}

	view := listView{
		Query:    query,
		Recipes:  recipes,
		Facets:   facets,
		Selected: make(map[int]bool, len(termIDs)),
		Meta:     meta,
	}
	for _, id := range termIDs {
		view.Selected[id] = true
	}
	if meta.HasPrev() {
		view.PrevURL = pageURL(request.URL.Query(), meta.Page-1)
	}
	if meta.HasNext() {
		view.NextURL = pageURL(request.URL.Query(), meta.Page+1)
	}

	handler.render(writer, request, http.StatusOK, pageList, view)
}

// detailPage renders GET /recipes/{slug}/
func (handler *Handler) detailPage(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.recipes.Detail(request.Context(), requestutil.Param(request, recipe.FieldSlug))
	if err != nil {
		handler.renderError(writer, request, err)
		return
	}
	handler.render(writer, request, http.StatusOK, pageDetail, detailView{Recipe: detail})
}

// # Rendering

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, name string, data any) {
	var buffer bytes.Buffer
	if err := handler.pages[name].ExecuteTemplate(&buffer, "layout", data); err != nil {
		handler.logger.ErrorContext(request.Context(), "web_render_failed",
			slog.String("page", name),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// renderError shows an error page with the status of err. Internal causes are logged, not shown.
func (handler *Handler) renderError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		handler.logger.ErrorContext(request.Context(), "web_page_failed",
			slog.String("path", request.URL.Path),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("error", err),
		)
	}

	handler.render(writer, request, appError.HTTPStatus, pageError, errorView{
		Status:  appError.HTTPStatus,
		Message: appError.Message,
	})
}

// pageURL keeps every filter of values and points at page.
func pageURL(values url.Values, page int) string {
	values.Set("page", strconv.Itoa(page))
	return "?" + values.Encode()
}
