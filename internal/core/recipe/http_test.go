// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/core/recipe"
	"github.com/taibuivan/recetario/internal/platform/ctxutil"
	"github.com/taibuivan/recetario/internal/platform/objectstore"
	"github.com/taibuivan/recetario/internal/platform/sec"
)

const testUploadLimit = 1 << 10

func asRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				claims := &sec.AuthClaims{Role: string(role)}
				claims.Subject = "cocinera@recetario"
				request = request.WithContext(ctxutil.WithEditor(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(repository *memoryRepository, role sec.UserRole) http.Handler {
	store := objectstore.NewLocalStoreFs(afero.NewMemMapFs(), "/media/")
	service := recipe.NewService(repository, dessertExpander(), store, discardLogger(),
		recipe.WithClock(func() time.Time { return fixedNow }, func() string { return "a1b2c3" }))

	router := chi.NewRouter()
	router.Use(asRole(role))
	router.Mount("/recipes", recipe.NewHandler(service, testUploadLimit).Routes())
	return router
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func responseTitles(t *testing.T, recorder *httptest.ResponseRecorder) []string {
	t.Helper()

	var body struct {
		Data []recipe.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	result := make([]string, 0, len(body.Data))
	for _, item := range body.Data {
		result = append(result, item.Title)
	}
	return result
}

func TestHTTP_ListRecipes(t *testing.T) {
	router := newRouter(dessertRecipes(), "")

	recorder := serve(router, http.MethodGet, "/recipes?term=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"Pastel de chocolate", "Postre de la casa", "Helado de vainilla"}, responseTitles(t, recorder))
	assert.Contains(t, recorder.Body.String(), `"total":3`)

	recorder = serve(router, http.MethodGet, "/recipes?term=1&q=VAINILLA", "")
	assert.Equal(t, []string{"Helado de vainilla"}, responseTitles(t, recorder))

	recorder = serve(router, http.MethodGet, "/recipes?page=2&limit=3", "")
	assert.Equal(t, []string{"Pollo al horno"}, responseTitles(t, recorder))

	recorder = serve(router, http.MethodGet, "/recipes?term=postre", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Ids beyond the INTEGER column range are rejected before any lookup
	recorder = serve(router, http.MethodGet, "/recipes?term=3000000000", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INVALID_INPUT")
}

func TestHTTP_GetRecipe(t *testing.T) {
	router := newRouter(dessertRecipes(), "")

	recorder := serve(router, http.MethodGet, "/recipes/pastel-de-chocolate", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Slug       string              `json:"slug"`
			FacetTerms []recipe.FacetTerms `json:"facet_terms"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "pastel-de-chocolate", body.Data.Slug)
	assert.Equal(t, []recipe.FacetTerms{
		{FacetID: 10, FacetName: "Tipo de plato", Terms: []recipe.TermRef{{ID: pastelID, Name: "Pastel"}}},
	}, body.Data.FacetTerms)

	recorder = serve(router, http.MethodGet, "/recipes/tarta", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHTTP_CreateRecipe_RequiresEditor checks the role gate and the generated slug.
*/
func TestHTTP_CreateRecipe_RequiresEditor(t *testing.T) {
	payload := `{"title":"Pastel de chocolate","term_ids":[2,4]}`

	assert.Equal(t, http.StatusUnauthorized, serve(newRouter(dessertRecipes(), ""), http.MethodPost, "/recipes", payload).Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(dessertRecipes(), sec.RoleViewer), http.MethodPost, "/recipes", payload).Code)

	recorder := serve(newRouter(dessertRecipes(), sec.RoleEditor), http.MethodPost, "/recipes", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"pastel-de-chocolate-1"`)
	assert.Contains(t, recorder.Body.String(), `"facet_name":"Ingrediente principal"`)

	recorder = serve(newRouter(dessertRecipes(), sec.RoleAdmin), http.MethodPost, "/recipes", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
}

/*
TestHTTP_CreateRecipe_UnknownTerm checks that a rejected term list leaves no
recipe behind and does not consume the slug.
*/
func TestHTTP_CreateRecipe_UnknownTerm(t *testing.T) {
	router := newRouter(dessertRecipes(), sec.RoleEditor)

	// 1. Rejected create
	recorder := serve(router, http.MethodPost, "/recipes", `{"title":"Flan","term_ids":[9999]}`)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	// 2. Nothing was stored
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/recipes/flan", "").Code)

	// 3. Retry gets the plain slug
	recorder = serve(router, http.MethodPost, "/recipes", `{"title":"Flan","term_ids":[1]}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"flan"`)
}

func TestHTTP_RecipeTerms(t *testing.T) {
	repository := dessertRecipes()
	router := newRouter(repository, sec.RoleEditor)

	recorder := serve(router, http.MethodPost, "/recipes/pollo-al-horno/terms", `{"term_id":4}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, http.MethodPost, "/recipes/pollo-al-horno/terms", `{"term_id":4}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = serve(router, http.MethodPut, "/recipes/pollo-al-horno/terms", `{"term_ids":[404]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	recorder = serve(router, http.MethodDelete, "/recipes/pollo-al-horno/terms/4", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, repository.assignments[4])
}

func TestHTTP_UpdateAndDelete(t *testing.T) {
	router := newRouter(dessertRecipes(), sec.RoleEditor)

	recorder := serve(router, http.MethodPatch, "/recipes/pollo-al-horno", `{"description":"Con papas"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"description":"Con papas"`)
	assert.Contains(t, recorder.Body.String(), `"slug":"pollo-al-horno"`)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/recipes/pollo-al-horno", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/recipes/pollo-al-horno", "").Code)
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHTTP_UploadImage(t *testing.T) {
	router := newRouter(dessertRecipes(), sec.RoleEditor)

	upload := func(field string, content []byte) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, field, "portada.png", content)
		request := httptest.NewRequest(http.MethodPut, "/recipes/pastel-de-chocolate/image", body)
		request.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := upload("image", []byte(pngHeader))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(),
		`"image_url":"/media/recipes/2026/10/pastel-de-chocolate-20261018093000-a1b2c3.png"`)

	assert.Equal(t, http.StatusBadRequest, upload("photo", []byte(pngHeader)).Code)
	assert.Equal(t, http.StatusBadRequest, upload("image", []byte("plain text")).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, upload("image", bytes.Repeat([]byte{0x89}, 2*testUploadLimit)).Code)

	recorder = serve(router, http.MethodPut, "/recipes/pastel-de-chocolate/image", "not multipart")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
