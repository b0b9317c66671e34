package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/validators"
)

// UserUpdate is the partial profile-update payload; nil fields are left
// unchanged.
type UserUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// UserService serves public profiles and the "me" endpoint.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get renders one user's profile for the given viewer.
func (s *UserService) Get(ctx context.Context, userID uint, viewerID *uint) (*UserView, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view, err := buildUserView(ctx, s.db, &user, viewerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List returns one page of users ordered by username.
func (s *UserService) List(ctx context.Context, viewerID *uint, page, limit int) (int64, []*UserView, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.User{}).Order("username")
	if limit > 0 {
		query = query.Limit(limit)
		if page > 1 {
			query = query.Offset((page - 1) * limit)
		}
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return 0, nil, err
	}

	views := make([]*UserView, 0, len(users))
	for i := range users {
		view, err := buildUserView(ctx, s.db, &users[i], viewerID)
		if err != nil {
			return 0, nil, err
		}
		views = append(views, &view)
	}

	return total, views, nil
}

// Update applies a partial profile update to the authenticated user.
func (s *UserService) Update(ctx context.Context, userID uint, in *UserUpdate) (*UserView, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != nil {
		if _, err := validators.Username(*in.Username); err != nil {
			return nil, validationErr("username", err.Error())
		}
		if _, err := validators.NotMeUsername(*in.Username); err != nil {
			return nil, validationErr("username", err.Error())
		}
		updates["username"] = *in.Username
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, validationErr("username", "username is already taken")
			}
			return nil, err
		}
	}

	view, err := buildUserView(ctx, s.db, &user, &userID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
