package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// EdgeKind selects which user-recipe join table a toggle operates on.
// Favorite and ShoppingCart are structurally identical; the kind picks
// the table and the duplicate-edge message.
type EdgeKind int

const (
	EdgeFavorite EdgeKind = iota
	EdgeShoppingCart
)

func (k EdgeKind) model() interface{} {
	if k == EdgeFavorite {
		return &models.Favorite{}
	}
	return &models.ShoppingCart{}
}

func (k EdgeKind) duplicateMessage() string {
	if k == EdgeFavorite {
		return "recipe is already in favorites"
	}
	return "recipe is already in the shopping cart"
}

// EdgeService toggles favorite and shopping-cart edges. The database
// unique constraint is the backstop for concurrent inserts: exactly one
// wins, the loser surfaces the duplicate-edge validation error.
type EdgeService struct {
	db *gorm.DB
}

func NewEdgeService(db *gorm.DB) *EdgeService {
	return &EdgeService{db: db}
}

// Add inserts a (user, recipe) edge and returns the short recipe shape.
func (s *EdgeService) Add(ctx context.Context, kind EdgeKind, userID, recipeID uint) (*RecipeShortView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(kind.model()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("errors", kind.duplicateMessage())
	}

	var err error
	if kind == EdgeFavorite {
		err = s.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	} else {
		err = s.db.WithContext(ctx).Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	}
	if err != nil {
		// Lost a race against a concurrent insert of the same pair.
		if isUniqueViolation(err) {
			return nil, validationErr("errors", kind.duplicateMessage())
		}
		return nil, err
	}

	return &RecipeShortView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, nil
}

// Remove deletes a (user, recipe) edge; a missing recipe or edge is a
// not-found error, never a silent no-op.
func (s *EdgeService) Remove(ctx context.Context, kind EdgeKind, userID, recipeID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(kind.model())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
