package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wandora/internal/model"
)

// FollowRepository defines persistence for follow relations.
type FollowRepository interface {
	Find(ctx context.Context, followerID, followingID uuid.UUID) (*model.Follow, error)
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Find looks up a follow relation; gorm.ErrRecordNotFound means "not following".
func (r *followRepository) Find(ctx context.Context, followerID, followingID uuid.UUID) (*model.Follow, error) {
	var follow model.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

// Create inserts a follow relation.
func (r *followRepository) Create(ctx context.Context, follow *model.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// Delete removes a follow relation.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

// CountFollowers counts users following userID.
func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing counts users userID follows.
func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
