package models

import (
	"time"
)

type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"-"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	CreatedAt   time.Time `json:"-"`
}

// IngredientRecipe carries the per-recipe amount of a single ingredient.
// Rows are fully replaced on recipe update, never patched.
type IngredientRecipe struct {
	ID           uint       `gorm:"primarykey" json:"-"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Amount       int        `gorm:"not null" json:"amount"`
	Recipe       Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

type TagRecipe struct {
	ID       uint   `gorm:"primarykey" json:"-"`
	RecipeID uint   `gorm:"not null;index" json:"-"`
	TagID    uint   `gorm:"not null" json:"-"`
	Recipe   Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tag      Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

type Favorite struct {
	ID       uint   `gorm:"primarykey" json:"-"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user"`
	RecipeID uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe   Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

type ShoppingCart struct {
	ID       uint   `gorm:"primarykey" json:"-"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user"`
	RecipeID uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe   Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// All returns every model for auto-migration, ordered so that referenced
// tables are created before the tables that point at them.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&IngredientRecipe{},
		&TagRecipe{},
		&Favorite{},
		&ShoppingCart{},
		&Follow{},
	}
}
