package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// UserView is the public profile shape, with the subscription flag
// computed against the requesting user.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientView is an ingredient with its recipe-specific amount.
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeShortView is the compact recipe shape returned by the edge
// toggles and embedded in subscription payloads.
type RecipeShortView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeView is the full read representation. Write operations respond
// with this shape, never with the write payload.
type RecipeView struct {
	ID               uint                   `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// AuthorView is a profile enriched with the author's recipes, as returned
// by the subscription endpoints.
type AuthorView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// buildUserView renders a profile for the given viewer. The subscription
// flag is false for anonymous viewers.
func buildUserView(ctx context.Context, db *gorm.DB, user *models.User, viewerID *uint) (UserView, error) {
	view := UserView{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if viewerID != nil {
		var count int64
		err := db.WithContext(ctx).Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", *viewerID, user.ID).
			Count(&count).Error
		if err != nil {
			return view, err
		}
		view.IsSubscribed = count > 0
	}

	return view, nil
}

// buildRecipeView assembles the full representation of one recipe.
func buildRecipeView(ctx context.Context, db *gorm.DB, recipe *models.Recipe, viewerID *uint) (*RecipeView, error) {
	view := &RecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Tags:        []models.Tag{},
		Ingredients: []RecipeIngredientView{},
	}

	if err := db.WithContext(ctx).Model(&models.Tag{}).
		Joins("JOIN tag_recipes ON tag_recipes.tag_id = tags.id").
		Where("tag_recipes.recipe_id = ?", recipe.ID).
		Order("tag_recipes.id").
		Find(&view.Tags).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&models.IngredientRecipe{}).
		Select("ingredients.id AS id, ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_recipes.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Where("ingredient_recipes.recipe_id = ?", recipe.ID).
		Order("ingredient_recipes.id").
		Scan(&view.Ingredients).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := db.WithContext(ctx).First(&author, recipe.AuthorID).Error; err != nil {
		return nil, err
	}
	authorView, err := buildUserView(ctx, db, &author, viewerID)
	if err != nil {
		return nil, err
	}
	view.Author = authorView

	if viewerID != nil {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", *viewerID, recipe.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		view.IsFavorited = count > 0

		if err := db.WithContext(ctx).Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", *viewerID, recipe.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		view.IsInShoppingCart = count > 0
	}

	return view, nil
}

// buildAuthorView renders a followed author with their recipes, capped at
// recipesLimit when positive.
func buildAuthorView(ctx context.Context, db *gorm.DB, author *models.User, viewerID *uint, recipesLimit int) (*AuthorView, error) {
	userView, err := buildUserView(ctx, db, author, viewerID)
	if err != nil {
		return nil, err
	}

	view := &AuthorView{
		UserView: userView,
		Recipes:  []RecipeShortView{},
	}

	if err := db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&view.RecipesCount).Error; err != nil {
		return nil, err
	}

	query := db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Order("created_at DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	if err := query.Scan(&view.Recipes).Error; err != nil {
		return nil, err
	}

	return view, nil
}
