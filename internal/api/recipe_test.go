package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dboiago/Memoix-sub000/internal/service"
	"github.com/dboiago/Memoix-sub000/internal/testdb"
)

type testServer struct {
	engine *gin.Engine
	token  string
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.SetupTestDB(t)
	recipeService := service.NewRecipeService(db, nil)
	authService := service.NewAuthService(db, "test-secret")

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, nil, authService).RegisterRoutes(v1)
	NewShareHandler(recipeService, nil, authService).RegisterRoutes(v1)

	token, err := authService.Register(context.Background(), "Tester", "tester@example.com", "password123")
	require.NoError(t, err)

	return &testServer{engine: engine, token: token}
}

func (s *testServer) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) createRecipe(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/v1/recipes", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateRecipeEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "Recipes Soups"})
	assert.Equal(t, "Pho", created["name"])
	assert.Equal(t, "soup", created["course"])
	assert.NotEmpty(t, created["uuid"])
	assert.NotContains(t, created, "id")
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.request(t, http.MethodPost, "/api/v1/recipes", map[string]any{"name": "Pho", "course": "soup"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.request(t, http.MethodPost, "/api/v1/recipes", map[string]any{"name": "Pho"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeEndpoint(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})

	w := srv.request(t, http.MethodGet, "/api/v1/recipes/"+created["uuid"].(string), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pho", decodeBody(t, w)["name"])

	w = srv.request(t, http.MethodGet, "/api/v1/recipes/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesEndpoint(t *testing.T) {
	srv := setupTestServer(t)
	srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})
	srv.createRecipe(t, map[string]any{"name": "Margherita", "course": "pizzas"})

	w := srv.request(t, http.MethodGet, "/api/v1/recipes?course=soup", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	recipes := decodeBody(t, w)["recipes"].([]any)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pho", recipes[0].(map[string]any)["name"])
}

func TestUpdateAndDeleteRecipeEndpoints(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})
	path := "/api/v1/recipes/" + created["uuid"].(string)

	w := srv.request(t, http.MethodPut, path, map[string]any{"name": "Pho Bo", "course": "soup"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "Pho Bo", updated["name"])
	assert.Equal(t, float64(1), updated["editCount"])

	w = srv.request(t, http.MethodDelete, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.request(t, http.MethodGet, path, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteAndCookEndpoints(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})
	base := "/api/v1/recipes/" + created["uuid"].(string)

	w := srv.request(t, http.MethodPost, base+"/favorite", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["isFavorite"])

	w = srv.request(t, http.MethodPost, base+"/favorite", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["isFavorite"])

	w = srv.request(t, http.MethodPost, base+"/cook", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["cookCount"])
	assert.NotNil(t, body["lastCookedAt"])
}

func TestImportExportEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	doc := map[string]any{
		"uuid":       "imp-1",
		"name":       "Gazpacho",
		"course":     "Recipes Soups",
		"comments":   "serve cold",
		"directions": []string{"Directions", "Blend"},
	}

	w := srv.request(t, http.MethodPost, "/api/v1/recipes/import", doc, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	imported := decodeBody(t, w)
	assert.Equal(t, "soup", imported["course"])
	assert.Equal(t, "serve cold", imported["notes"])

	// Re-importing the same uuid is a conflict.
	w = srv.request(t, http.MethodPost, "/api/v1/recipes/import", doc, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.request(t, http.MethodGet, "/api/v1/recipes/imp-1/export", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	exported := decodeBody(t, w)
	assert.Equal(t, "imp-1", exported["uuid"])
	assert.Equal(t, []any{"Blend"}, exported["directions"])
}

func TestImportEndpointBadPayload(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.request(t, http.MethodPost, "/api/v1/recipes/import", map[string]any{"name": "No UUID"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareableExportEndpoint(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{
		"name":       "Pho",
		"course":     "soup",
		"isFavorite": true,
		"rating":     5,
		"sourceUrl":  "https://example.com/pho",
	})

	w := srv.request(t, http.MethodGet, "/api/v1/recipes/"+created["uuid"].(string)+"/shareable", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "https://example.com/pho", body["sourceUrl"])
	for _, key := range []string{"isFavorite", "rating", "cookCount", "source", "createdAt"} {
		assert.NotContains(t, body, key)
	}
}

func TestPairingEndpoints(t *testing.T) {
	srv := setupTestServer(t)
	steak := srv.createRecipe(t, map[string]any{"name": "Steak", "course": "mains"})
	wine := srv.createRecipe(t, map[string]any{"name": "Mulled Wine", "course": "drinks"})
	base := fmt.Sprintf("/api/v1/recipes/%s/pairings", steak["uuid"])

	w := srv.request(t, http.MethodPost, base, map[string]any{"pairedUuid": wine["uuid"]}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.request(t, http.MethodGet, base, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["supportsPairing"])
	require.Len(t, body["pairings"].([]any), 1)

	w = srv.request(t, http.MethodDelete, fmt.Sprintf("%s/%s", base, wine["uuid"]), nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.request(t, http.MethodDelete, fmt.Sprintf("%s/%s", base, wine["uuid"]), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPairingExcludedCourse(t *testing.T) {
	srv := setupTestServer(t)
	pizza := srv.createRecipe(t, map[string]any{"name": "Margherita", "course": "pizzas"})

	w := srv.request(t, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%s/pairings", pizza["uuid"]), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["supportsPairing"])
}

func TestUploadImageUnconfigured(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})

	w := srv.request(t, http.MethodPost, "/api/v1/recipes/"+created["uuid"].(string)+"/images", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestShareEndpointsUnconfigured(t *testing.T) {
	srv := setupTestServer(t)
	created := srv.createRecipe(t, map[string]any{"name": "Pho", "course": "soup"})

	w := srv.request(t, http.MethodPost, "/api/v1/recipes/"+created["uuid"].(string)+"/share", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = srv.request(t, http.MethodGet, "/api/v1/share/sometoken", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name": "Alex", "email": "alex@example.com", "password": "hunter22",
	}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = srv.request(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "alex@example.com", "password": "hunter22",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = srv.request(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "alex@example.com", "password": "wrong",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
