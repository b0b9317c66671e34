package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// FollowService maintains the subscription graph: no self-follow, unique
// (user, author) pairs, enriched author payloads on create and list.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Subscribe creates a follow edge and returns the author's enriched
// profile. recipesLimit caps the embedded recipe list when positive.
func (s *FollowService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*AuthorView, error) {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if userID == authorID {
		return nil, validationErr("errors", "subscribing to yourself is not allowed")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("errors", "already subscribed to this author")
	}

	if err := s.db.WithContext(ctx).Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, validationErr("errors", "already subscribed to this author")
		}
		return nil, err
	}

	return buildAuthorView(ctx, s.db, &author, &userID, recipesLimit)
}

// Unsubscribe removes the follow edge; a missing edge is a not-found
// error rather than a silent no-op.
func (s *FollowService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscriptions lists every author the user follows, paginated, each
// rendered with the same enriched shape as Subscribe.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, recipesLimit, page, limit int) (int64, []*AuthorView, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	query := base.Order("users.username")
	if limit > 0 {
		query = query.Limit(limit)
		if page > 1 {
			query = query.Offset((page - 1) * limit)
		}
	}

	var authors []models.User
	if err := query.Find(&authors).Error; err != nil {
		return 0, nil, err
	}

	views := make([]*AuthorView, 0, len(authors))
	for i := range authors {
		view, err := buildAuthorView(ctx, s.db, &authors[i], &userID, recipesLimit)
		if err != nil {
			return 0, nil, err
		}
		views = append(views, view)
	}

	return total, views, nil
}
