package api

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

func recipePayload(db *gorm.DB, t *testing.T) gin.H {
	t.Helper()

	tag := testhelpers.CreateTestTag(t, db, "breakfast", "#E26C2D")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	return gin.H{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"image":        "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png")),
		"cooking_time": 15,
		"tags":         []uint{tag.ID},
		"ingredients":  []gin.H{{"id": flour.ID, "amount": 200}},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	author := testhelpers.CreateTestUser(t, db, "author")
	token := loginAs(t, router, author)
	payload := recipePayload(db, t)

	// Anonymous writes are rejected.
	w := performRequest(router, http.MethodPost, "/api/recipes/", jsonBody(t, payload), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/api/recipes/", jsonBody(t, payload), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.Equal(t, false, body["is_favorited"])
	assert.Len(t, body["tags"], 1)
	assert.Len(t, body["ingredients"], 1)

	authorBody := body["author"].(map[string]interface{})
	assert.Equal(t, "author", authorBody["username"])
}

func TestCreateRecipeEndpointValidation(t *testing.T) {
	router, db := setupTestRouter(t)
	author := testhelpers.CreateTestUser(t, db, "author")
	token := loginAs(t, router, author)

	payload := recipePayload(db, t)
	payload["tags"] = []uint{}

	w := performRequest(router, http.MethodPost, "/api/recipes/", jsonBody(t, payload), token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Validation failures carry the field name in the body.
	body := decodeBody(t, w)
	assert.Contains(t, body, "tags")
}

func TestUpdateRecipeEndpointPermissions(t *testing.T) {
	router, db := setupTestRouter(t)
	author := testhelpers.CreateTestUser(t, db, "author")
	other := testhelpers.CreateTestUser(t, db, "other")
	payload := recipePayload(db, t)

	w := performRequest(router, http.MethodPost, "/api/recipes/", jsonBody(t, payload), loginAs(t, router, author))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"]

	otherToken := loginAs(t, router, other)
	w = performRequest(router, http.MethodPatch, recipePath(id), jsonBody(t, payload), otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(router, http.MethodDelete, recipePath(id), nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(router, http.MethodDelete, recipePath(id), nil, loginAs(t, router, author))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, http.MethodGet, recipePath(id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesEndpointPagination(t *testing.T) {
	router, db := setupTestRouter(t)
	author := testhelpers.CreateTestUser(t, db, "author")
	for i := 0; i < 8; i++ {
		testhelpers.CreateTestRecipe(t, db, author, "Recipe", nil, nil)
	}

	// Default page size.
	w := performRequest(router, http.MethodGet, "/api/recipes/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 8, body["count"])
	assert.Len(t, body["results"], 6)

	w = performRequest(router, http.MethodGet, "/api/recipes/?page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["results"], 2)

	w = performRequest(router, http.MethodGet, "/api/recipes/?limit=3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["results"], 3)
}

func TestFavoriteEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "viewer")
	author := testhelpers.CreateTestUser(t, db, "author")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Stew", nil, nil)
	token := loginAs(t, router, user)

	w := performRequest(router, http.MethodPost, recipePath(recipe.ID)+"/favorite", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The toggle answers with the short recipe shape.
	body := decodeBody(t, w)
	assert.Equal(t, "Stew", body["name"])
	assert.NotContains(t, body, "ingredients")

	w = performRequest(router, http.MethodPost, recipePath(recipe.ID)+"/favorite", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, recipePath(recipe.ID)+"/favorite", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, http.MethodDelete, recipePath(recipe.ID)+"/favorite", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodPost, recipePath(9999)+"/favorite", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCartEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "shopper")
	author := testhelpers.CreateTestUser(t, db, "author")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	r1 := testhelpers.CreateTestRecipe(t, db, author, "Bread", nil, map[*models.Ingredient]int{flour: 200})
	r2 := testhelpers.CreateTestRecipe(t, db, author, "Cake", nil, map[*models.Ingredient]int{flour: 100})
	token := loginAs(t, router, user)

	w := performRequest(router, http.MethodGet, "/api/recipes/download_shopping_cart", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, r := range []*models.Recipe{r1, r2} {
		w = performRequest(router, http.MethodPost, recipePath(r.ID)+"/shopping_cart", nil, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = performRequest(router, http.MethodGet, "/api/recipes/download_shopping_cart", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Shopping list:\nflour (g) - 300", w.Body.String())
}
