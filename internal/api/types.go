package api

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IngredientAmountRequest references an ingredient by id with its amount.
type IngredientAmountRequest struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeRequest is the recipe write payload for both create and update.
// Image may be empty on update to keep the stored one.
type RecipeRequest struct {
	Tags        []uint                    `json:"tags"`
	Ingredients []IngredientAmountRequest `json:"ingredients"`
	Name        string                    `json:"name" binding:"required"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time"`
}

// UserUpdateRequest is the partial payload for PATCH /users/me.
type UserUpdateRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// PageResponse is the envelope for paginated list endpoints.
type PageResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}
