// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/core/taxonomy"
	"github.com/taibuivan/recetario/internal/platform/ctxutil"
	"github.com/taibuivan/recetario/internal/platform/sec"
)

// asRole injects claims for role, or none when role is empty.
func asRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				claims := &sec.AuthClaims{Role: string(role)}
				claims.Subject = "editor@recetario"
				request = request.WithContext(ctxutil.WithEditor(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(repository *memoryRepository, role sec.UserRole) http.Handler {
	router := chi.NewRouter()
	router.Use(asRole(role))
	taxonomy.NewHandler(taxonomy.NewService(repository, discardLogger())).RegisterRoutes(router)
	return router
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHTTP_ExpandTerms(t *testing.T) {
	repository, _, _, _ := dessertCatalog()
	router := newRouter(repository, "")

	// Repeated and comma separated values both work
	recorder := serve(router, http.MethodGet, "/terms/expand?term=4&term=7,404", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[4,5,6,7,404]}`, recorder.Body.String())

	recorder = serve(router, http.MethodGet, "/terms/expand", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())

	recorder = serve(router, http.MethodGet, "/terms/expand?term=pastel", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_INPUT")

	recorder = serve(router, http.MethodGet, "/terms/expand?term=4,3000000000", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_INPUT")
}

func TestHTTP_FacetTree(t *testing.T) {
	repository, postre, _, _ := dessertCatalog()
	router := newRouter(repository, "")

	recorder := serve(router, http.MethodGet, "/facets/2/tree", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data taxonomy.FacetTree `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data.Terms, 1)
	assert.Equal(t, postre.ID, body.Data.Terms[0].ID)
	assert.Len(t, body.Data.Terms[0].Children, 2)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/facets/99/tree", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/facets/abc/tree", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/facets/3000000000/tree", "").Code)
}

func TestHTTP_ListTerms_FacetFilter(t *testing.T) {
	repository, _, _, _ := dessertCatalog()
	router := newRouter(repository, "")

	recorder := serve(router, http.MethodGet, "/terms?facet=3", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []taxonomy.Term `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Pollo", body.Data[0].Name)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/terms?facet=x", "").Code)
}

/*
TestHTTP_WritesRequireAdmin walks the same create request through anonymous,
editor and admin callers.
*/
func TestHTTP_WritesRequireAdmin(t *testing.T) {
	payload := `{"facet_id":2,"parent_id":4,"name":"Flan","order":3}`

	tests := []struct {
		name string
		role sec.UserRole
		want int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"editor", sec.RoleEditor, http.StatusForbidden},
		{"admin", sec.RoleAdmin, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, _, _, _ := dessertCatalog()
			recorder := serve(newRouter(repository, tt.role), http.MethodPost, "/terms", payload)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestHTTP_TermLifecycle(t *testing.T) {
	repository, _, pastel, _ := dessertCatalog()
	router := newRouter(repository, sec.RoleAdmin)

	recorder := serve(router, http.MethodPut, "/terms/6", `{"parent_id":6,"name":"Pastel"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "parent_id")

	recorder = serve(router, http.MethodPut, "/terms/6", `{"parent_id":4,"name":"Pasteles","order":1}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Pasteles", pastel.Name)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/terms/6", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/terms/6", "").Code)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/terms", "{not json").Code)
}
