package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestFavoriteToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewEdgeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "viewer")
	author := testhelpers.CreateTestUser(t, db, "author")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Pancakes", nil, nil)

	view, err := svc.Add(ctx, EdgeFavorite, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, view.ID)
	assert.Equal(t, "Pancakes", view.Name)
	assert.Equal(t, recipe.CookingTime, view.CookingTime)

	// Favoriting twice is a validation error and leaves a single row.
	_, err = svc.Add(ctx, EdgeFavorite, user.ID, recipe.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Remove(ctx, EdgeFavorite, user.ID, recipe.ID))

	// Removing again is a not-found error, not a silent no-op.
	assert.ErrorIs(t, svc.Remove(ctx, EdgeFavorite, user.ID, recipe.ID), ErrNotFound)
}

func TestFavoriteMissingRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewEdgeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "viewer")

	_, err := svc.Add(ctx, EdgeFavorite, user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, EdgeFavorite, user.ID, 9999), ErrNotFound)
}

func TestShoppingCartToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewEdgeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "viewer")
	author := testhelpers.CreateTestUser(t, db, "author")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Stew", nil, nil)

	_, err := svc.Add(ctx, EdgeShoppingCart, user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, EdgeShoppingCart, user.ID, recipe.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// The favorite table is unaffected by cart edges.
	var favorites int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
	assert.EqualValues(t, 0, favorites)

	require.NoError(t, svc.Remove(ctx, EdgeShoppingCart, user.ID, recipe.ID))
}
