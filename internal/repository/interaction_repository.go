package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wandora/internal/model"
)

// InteractionRepository defines persistence for like/save/rating/view join records.
type InteractionRepository interface {
	FindLike(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.GemstoneLike, error)
	AddLike(ctx context.Context, like *model.GemstoneLike) (likeCount int64, err error)
	RemoveLike(ctx context.Context, gemstoneID, userID uuid.UUID) (likeCount int64, err error)

	FindSave(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.SavedGemstone, error)
	CreateSave(ctx context.Context, save *model.SavedGemstone) error
	DeleteSave(ctx context.Context, gemstoneID, userID uuid.UUID) error

	FindRating(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.GemstoneRating, error)
	UpsertRating(ctx context.Context, rating *model.GemstoneRating) error
	RatingStats(ctx context.Context, gemstoneID uuid.UUID) (sum int64, count int64, err error)

	CreateView(ctx context.Context, view *model.GemstoneView) error
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// FindLike looks up a like row; gorm.ErrRecordNotFound means "not liked".
func (r *interactionRepository) FindLike(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.GemstoneLike, error) {
	var like model.GemstoneLike
	if err := r.db.WithContext(ctx).
		Where("gemstone_id = ? AND user_id = ?", gemstoneID, userID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// AddLike inserts a like row and bumps the denormalized counter in one
// transaction, returning the counter as persisted.
func (r *interactionRepository) AddLike(ctx context.Context, like *model.GemstoneLike) (int64, error) {
	var likeCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Raw(
			"UPDATE gemstones SET like_count = like_count + 1 WHERE id = ? RETURNING like_count",
			like.GemstoneID,
		).Scan(&likeCount).Error
	})
	return likeCount, err
}

// RemoveLike deletes the like row and lowers the counter in one transaction,
// returning the counter as persisted.
func (r *interactionRepository) RemoveLike(ctx context.Context, gemstoneID, userID uuid.UUID) (int64, error) {
	var likeCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gemstone_id = ? AND user_id = ?", gemstoneID, userID).
			Delete(&model.GemstoneLike{}).Error; err != nil {
			return err
		}
		return tx.Raw(
			"UPDATE gemstones SET like_count = like_count - 1 WHERE id = ? RETURNING like_count",
			gemstoneID,
		).Scan(&likeCount).Error
	})
	return likeCount, err
}

// FindSave looks up a bookmark row; gorm.ErrRecordNotFound means "not saved".
func (r *interactionRepository) FindSave(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.SavedGemstone, error) {
	var save model.SavedGemstone
	if err := r.db.WithContext(ctx).
		Where("gemstone_id = ? AND user_id = ?", gemstoneID, userID).
		First(&save).Error; err != nil {
		return nil, err
	}
	return &save, nil
}

// CreateSave inserts a bookmark row.
func (r *interactionRepository) CreateSave(ctx context.Context, save *model.SavedGemstone) error {
	return r.db.WithContext(ctx).Create(save).Error
}

// DeleteSave removes a bookmark row.
func (r *interactionRepository) DeleteSave(ctx context.Context, gemstoneID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("gemstone_id = ? AND user_id = ?", gemstoneID, userID).
		Delete(&model.SavedGemstone{}).Error
}

// FindRating looks up the viewer's rating row.
func (r *interactionRepository) FindRating(ctx context.Context, gemstoneID, userID uuid.UUID) (*model.GemstoneRating, error) {
	var rating model.GemstoneRating
	if err := r.db.WithContext(ctx).
		Where("gemstone_id = ? AND user_id = ?", gemstoneID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpsertRating inserts or updates a user's rating for a gemstone.
func (r *interactionRepository) UpsertRating(ctx context.Context, rating *model.GemstoneRating) error {
	var existing model.GemstoneRating
	err := r.db.WithContext(ctx).
		Where("gemstone_id = ? AND user_id = ?", rating.GemstoneID, rating.UserID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(rating).Error
	}
	if err != nil {
		return err
	}
	existing.Rating = rating.Rating
	return r.db.WithContext(ctx).Save(&existing).Error
}

// RatingStats returns the sum and count of ratings for a gemstone.
func (r *interactionRepository) RatingStats(ctx context.Context, gemstoneID uuid.UUID) (int64, int64, error) {
	type stats struct {
		Sum   int64
		Count int64
	}
	var s stats
	err := r.db.WithContext(ctx).Model(&model.GemstoneRating{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("gemstone_id = ?", gemstoneID).
		Scan(&s).Error
	return s.Sum, s.Count, err
}

// CreateView records one viewing.
func (r *interactionRepository) CreateView(ctx context.Context, view *model.GemstoneView) error {
	return r.db.WithContext(ctx).Create(view).Error
}
