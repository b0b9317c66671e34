package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

type RecipeHandler struct {
	recipes  *service.RecipeService
	edges    *service.EdgeService
	shopping *service.ShoppingListService
	auth     *service.AuthService
	pageSize int
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	edges *service.EdgeService,
	shopping *service.ShoppingListService,
	auth *service.AuthService,
	pageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		edges:    edges,
		shopping: shopping,
		auth:     auth,
		pageSize: pageSize,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/", middleware.OptionalAuthMiddleware(h.auth), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetRecipe)
		recipes.POST("/", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromCart)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, limit := pageParams(c, h.pageSize)

	filter := service.RecipeFilter{
		Page:      page,
		Limit:     limit,
		Favorited: c.Query("is_favorited") == "1",
		InCart:    c.Query("is_in_shopping_cart") == "1",
	}
	for _, raw := range c.QueryArray("tags") {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filter.TagSlugs = append(filter.TagSlugs, slug)
			}
		}
	}
	if author := c.Query("author"); author != "" {
		id, err := strconv.ParseUint(author, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = uint(id)
	}

	total, views, err := h.recipes.List(c.Request.Context(), filter, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PageResponse{Count: total, Results: views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.recipes.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.recipes.Create(c.Request.Context(), userID, recipeInput(&req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.recipes.Update(c.Request.Context(), id, userID, recipeInput(&req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addEdge(c, service.EdgeFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeEdge(c, service.EdgeFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addEdge(c, service.EdgeShoppingCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeEdge(c, service.EdgeShoppingCart)
}

func (h *RecipeHandler) addEdge(c *gin.Context, kind service.EdgeKind) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.edges.Add(c.Request.Context(), kind, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) removeEdge(c *gin.Context, kind service.EdgeKind) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.edges.Remove(c.Request.Context(), kind, userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.shopping.Aggregate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.shopping.Render(items)))
}

func recipeInput(req *RecipeRequest) *service.RecipeInput {
	in := &service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
	}
	for _, item := range req.Ingredients {
		in.Ingredients = append(in.Ingredients, service.IngredientAmount{ID: item.ID, Amount: item.Amount})
	}
	return in
}
