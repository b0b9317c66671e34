package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/validators"
)

// IngredientAmount references an ingredient together with its amount in
// the recipe payload.
type IngredientAmount struct {
	ID     uint
	Amount int
}

// RecipeInput is the validated write payload for create and update.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeFilter selects and pages the recipe list.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited bool
	InCart    bool
	Page      int
	Limit     int
}

// RecipeService implements the recipe write and read paths. Association
// rows are fully replaced on update inside a single transaction.
type RecipeService struct {
	db       *gorm.DB
	images   *ImageService
	minValue int
}

func NewRecipeService(db *gorm.DB, images *ImageService, minValue int) *RecipeService {
	return &RecipeService{
		db:       db,
		images:   images,
		minValue: minValue,
	}
}

// Create validates the payload, stores the image, and persists the recipe
// with its tag and ingredient associations atomically. The response is
// the read representation.
func (s *RecipeService) Create(ctx context.Context, authorID uint, in *RecipeInput) (*RecipeView, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, validationErr("image", "image is required")
	}

	imageURL, err := s.images.Store(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       imageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return insertAssociations(tx, recipe.ID, in)
	})
	if err != nil {
		return nil, err
	}

	return buildRecipeView(ctx, s.db, &recipe, &authorID)
}

// Update replaces the recipe's scalar fields and both association sets.
// Existing tag and ingredient rows are deleted and re-inserted from the
// payload — a full replace, never a diff.
func (s *RecipeService) Update(ctx context.Context, recipeID, userID uint, in *RecipeInput) (*RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrPermissionDenied
	}

	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	imageURL := recipe.Image
	if in.Image != "" {
		stored, err := s.images.Store(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		imageURL = stored
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.TagRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		if err := insertAssociations(tx, recipe.ID, in); err != nil {
			return err
		}
		recipe.Name = in.Name
		recipe.Text = in.Text
		recipe.Image = imageURL
		recipe.CookingTime = in.CookingTime
		return tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return buildRecipeView(ctx, s.db, &recipe, &userID)
}

// Get returns the read representation of one recipe. viewerID is nil for
// anonymous requests; both per-user flags are then false.
func (s *RecipeService) Get(ctx context.Context, recipeID uint, viewerID *uint) (*RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return buildRecipeView(ctx, s.db, &recipe, viewerID)
}

// Delete removes a recipe; only the author may delete it.
func (s *RecipeService) Delete(ctx context.Context, recipeID, userID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return ErrPermissionDenied
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, assoc := range []interface{}{&models.TagRecipe{}, &models.IngredientRecipe{}, &models.Favorite{}, &models.ShoppingCart{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(assoc).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, recipe.ID).Error
	})
}

// List returns the total count and one page of recipes, newest first.
// The favorited/in-cart filters only apply for authenticated viewers.
func (s *RecipeService) List(ctx context.Context, f RecipeFilter, viewerID *uint) (int64, []*RecipeView, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(f.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.TagRecipe{}).
				Select("tag_recipes.recipe_id").
				Joins("JOIN tags ON tags.id = tag_recipes.tag_id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.Favorited && viewerID != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *viewerID),
		)
	}
	if f.InCart && viewerID != nil {
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", *viewerID),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var recipes []models.Recipe
	page := query.Order("recipes.created_at DESC, recipes.id DESC")
	if f.Limit > 0 {
		page = page.Limit(f.Limit)
		if f.Page > 1 {
			page = page.Offset((f.Page - 1) * f.Limit)
		}
	}
	if err := page.Find(&recipes).Error; err != nil {
		return 0, nil, err
	}

	views := make([]*RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := buildRecipeView(ctx, s.db, &recipes[i], viewerID)
		if err != nil {
			return 0, nil, err
		}
		views = append(views, view)
	}

	return total, views, nil
}

// validateInput enforces the write-path rules: non-empty unique tags that
// exist, non-empty unique ingredients with valid amounts, and the
// cooking-time minimum.
func (s *RecipeService) validateInput(ctx context.Context, in *RecipeInput) error {
	if len(in.TagIDs) == 0 {
		return validationErr("tags", "at least one tag is required")
	}
	seenTags := make(map[uint]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			return validationErr("tags", "recipe tags must not repeat")
		}
		seenTags[id] = true
	}
	var tagCount int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", in.TagIDs).Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount != int64(len(in.TagIDs)) {
		return validationErr("tags", "tag does not exist")
	}

	if len(in.Ingredients) == 0 {
		return validationErr("ingredients", "at least one ingredient is required")
	}
	seenIngredients := make(map[uint]bool, len(in.Ingredients))
	ids := make([]uint, 0, len(in.Ingredients))
	for _, item := range in.Ingredients {
		if seenIngredients[item.ID] {
			return validationErr("ingredients", "recipe ingredients must not repeat")
		}
		seenIngredients[item.ID] = true
		ids = append(ids, item.ID)
		if _, err := validators.Min(item.Amount, s.minValue); err != nil {
			return validationErr("ingredients", fmt.Sprintf("ingredient amount must be at least %d", s.minValue))
		}
	}
	var ingredientCount int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount != int64(len(ids)) {
		return validationErr("ingredients", "ingredient does not exist")
	}

	if _, err := validators.Min(in.CookingTime, s.minValue); err != nil {
		return validationErr("cooking_time", fmt.Sprintf("cooking time must be at least %d", s.minValue))
	}

	return nil
}

// insertAssociations bulk-inserts the ingredient rows and tag links for a
// recipe. Callers run it inside the surrounding transaction.
func insertAssociations(tx *gorm.DB, recipeID uint, in *RecipeInput) error {
	rows := make([]models.IngredientRecipe, 0, len(in.Ingredients))
	for _, item := range in.Ingredients {
		rows = append(rows, models.IngredientRecipe{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}

	links := make([]models.TagRecipe, 0, len(in.TagIDs))
	for _, id := range in.TagIDs {
		links = append(links, models.TagRecipe{RecipeID: recipeID, TagID: id})
	}
	return tx.Create(&links).Error
}
