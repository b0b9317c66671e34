package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
)

func TestRegisterEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	payload := gin.H{
		"email":      "ann@example.com",
		"username":   "ann",
		"first_name": "Ann",
		"last_name":  "Lee",
		"password":   "secretpass",
	}
	w := performRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, payload), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	// The reserved username is rejected with a field-scoped error.
	payload["email"] = "other@example.com"
	payload["username"] = "me"
	w = performRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, payload), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "username")

	// Short passwords fail request binding.
	payload["username"] = "bob"
	payload["password"] = "abc"
	w = performRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, payload), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "ann")
	token := loginAs(t, router, user)

	w := performRequest(router, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ann", body["username"])
	assert.NotContains(t, body, "password_hash")

	w = performRequest(router, http.MethodPatch, "/api/users/me",
		jsonBody(t, gin.H{"first_name": "Anna"}), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Anna", decodeBody(t, w)["first_name"])
}

func TestGetUserEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "ann")

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ann", body["username"])
	assert.Equal(t, false, body["is_subscribed"])

	w = performRequest(router, http.MethodGet, "/api/users/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "reader")
	author := testhelpers.CreateTestUser(t, db, "writer")
	for i := 0; i < 3; i++ {
		testhelpers.CreateTestRecipe(t, db, author, "Recipe", nil, nil)
	}
	token := loginAs(t, router, user)

	subscribePath := fmt.Sprintf("/api/users/%d/subscribe", author.ID)

	w := performRequest(router, http.MethodPost, subscribePath+"?recipes_limit=2", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "writer", body["username"])
	assert.Equal(t, true, body["is_subscribed"])
	assert.EqualValues(t, 3, body["recipes_count"])
	assert.Len(t, body["recipes"], 2)

	// Duplicate and self-follow are validation errors.
	w = performRequest(router, http.MethodPost, subscribePath, nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performRequest(router, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", user.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody(t, w)
	assert.EqualValues(t, 1, page["count"])
	results := page["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Len(t, results[0].(map[string]interface{})["recipes"], 1)

	w = performRequest(router, http.MethodDelete, subscribePath, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(router, http.MethodDelete, subscribePath, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "bob")
	testhelpers.CreateTestUser(t, db, "alice")

	w := performRequest(router, http.MethodGet, "/api/users/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])

	results := body["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].(map[string]interface{})["username"])
}
