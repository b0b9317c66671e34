package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingListService renders the aggregated shopping list for a user's
// cart. Pure read side; deterministic for a fixed database state.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate sums ingredient amounts across every recipe in the user's
// cart, grouped by (name, unit) and ordered alphabetically by name.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uint) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := s.db.WithContext(ctx).Model(&models.IngredientRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render produces the plain-text document: a header line followed by one
// line per aggregated ingredient.
func (s *ShoppingListService) Render(items []ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list:")
	for _, item := range items {
		fmt.Fprintf(&b, "\n%s (%s) - %d", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
