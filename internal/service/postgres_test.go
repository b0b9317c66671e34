package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

// Exercises the write path against a real PostgreSQL instance. The
// sqlite-backed tests cover semantics; this one confirms the schema,
// constraint translation and aggregation SQL hold on the production
// engine.
func TestRecipeFlowOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupPostgresTestDB(t)
	ctx := context.Background()

	recipes := newRecipeService(t, db)
	edges := NewEdgeService(db)
	shopping := NewShoppingListService(db)

	author := testhelpers.CreateTestUser(t, db, "author")
	user := testhelpers.CreateTestUser(t, db, "viewer")
	tag := testhelpers.CreateTestTag(t, db, "dinner", "#8775D2")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	view, err := recipes.Create(ctx, author.ID, validInput(
		[]uint{tag.ID},
		[]IngredientAmount{{ID: flour.ID, Amount: 300}},
	))
	require.NoError(t, err)

	// The unique constraint on the edge tables translates to a
	// validation error, not a raw driver error.
	_, err = edges.Add(ctx, EdgeShoppingCart, user.ID, view.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, RecipeID: view.ID}).Error)
	err = db.Create(&models.Favorite{UserID: user.ID, RecipeID: view.ID}).Error
	assert.True(t, isUniqueViolation(err), "expected a translated unique violation, got %v", err)

	items, err := shopping.Aggregate(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ShoppingItem{Name: "flour", MeasurementUnit: "g", Amount: 300}, items[0])

	require.NoError(t, recipes.Delete(ctx, view.ID, author.ID))

	// Cart and favorite edges are gone with the recipe.
	var count int64
	require.NoError(t, db.Model(&models.ShoppingCart{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
