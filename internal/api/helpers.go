package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/service"
)

// currentUserID returns the authenticated user set by the auth
// middleware. Handlers behind AuthMiddleware can rely on ok being true.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// viewerID is the optional requester for read endpoints: nil when the
// request is anonymous.
func viewerID(c *gin.Context) *uint {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, service.ErrNotFound
	}
	return uint(id), nil
}

// pageParams reads ?page= and ?limit= with the configured default size.
func pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// respondError maps service errors onto the HTTP taxonomy. Validation
// failures keep their field scoping in the body.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		if verr.Field != "" {
			c.JSON(http.StatusBadRequest, gin.H{verr.Field: []string{verr.Message}})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "changing someone else's content is not allowed"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
