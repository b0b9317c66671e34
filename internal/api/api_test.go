package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		MediaDir:  t.TempDir(),
		PageSize:  6,
		MinValue:  1,
	}

	router := gin.New()
	SetupAPI(router, db, nil, cfg, nil)
	return router, db
}

func performRequest(router *gin.Engine, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, payload interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// loginAs issues a token for a fixture user created with the default
// test password.
func loginAs(t *testing.T, router *gin.Engine, user *models.User) string {
	t.Helper()

	w := performRequest(router, http.MethodPost, "/api/auth/login",
		jsonBody(t, gin.H{"email": user.Email, "password": "testpass123"}), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func recipePath(id interface{}) string {
	return fmt.Sprintf("/api/recipes/%v", id)
}
