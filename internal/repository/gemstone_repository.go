package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wandora/internal/model"
)

// GemstoneRepository defines gemstone persistence operations.
type GemstoneRepository interface {
	Create(ctx context.Context, gemstone *model.Gemstone) error
	Update(ctx context.Context, gemstone *model.Gemstone) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gemstone, error)
	List(ctx context.Context) ([]model.Gemstone, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error)
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ReplaceImages(ctx context.Context, gemstoneID uuid.UUID, images []model.GemstoneImage) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type gemstoneRepository struct {
	db *gorm.DB
}

// NewGemstoneRepository creates a new gemstone repository.
func NewGemstoneRepository(db *gorm.DB) GemstoneRepository {
	return &gemstoneRepository{db: db}
}

// Create stores a gemstone together with its images in one transaction.
func (r *gemstoneRepository) Create(ctx context.Context, gemstone *model.Gemstone) error {
	return r.db.WithContext(ctx).Create(gemstone).Error
}

// Update updates an existing gemstone.
func (r *gemstoneRepository) Update(ctx context.Context, gemstone *model.Gemstone) error {
	return r.db.WithContext(ctx).Save(gemstone).Error
}

// Delete soft-deletes a gemstone and removes its image rows.
func (r *gemstoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gemstone_id = ?", id).Delete(&model.GemstoneImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Gemstone{}, "id = ?", id).Error
	})
}

// FindByID finds a gemstone by ID with its author and images embedded.
func (r *gemstoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Gemstone, error) {
	var gemstone model.Gemstone
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images").
		Where("id = ?", id).First(&gemstone).Error; err != nil {
		return nil, err
	}
	gemstone.SortImages()
	return &gemstone, nil
}

// List returns all gemstones, newest first, with authors and images.
func (r *gemstoneRepository) List(ctx context.Context) ([]model.Gemstone, error) {
	var gemstones []model.Gemstone
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images").
		Order("created_at DESC").
		Find(&gemstones).Error; err != nil {
		return nil, err
	}
	for i := range gemstones {
		gemstones[i].SortImages()
	}
	return gemstones, nil
}

// ListByUser returns one user's gemstones, newest first.
func (r *gemstoneRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error) {
	var gemstones []model.Gemstone
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&gemstones).Error; err != nil {
		return nil, err
	}
	for i := range gemstones {
		gemstones[i].SortImages()
	}
	return gemstones, nil
}

// ListSavedByUser returns the gemstones a user bookmarked, newest bookmark first.
func (r *gemstoneRepository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error) {
	var gemstones []model.Gemstone
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images").
		Joins("JOIN saved_gemstones ON saved_gemstones.gemstone_id = gemstones.id").
		Where("saved_gemstones.user_id = ?", userID).
		Order("saved_gemstones.created_at DESC").
		Find(&gemstones).Error; err != nil {
		return nil, err
	}
	for i := range gemstones {
		gemstones[i].SortImages()
	}
	return gemstones, nil
}

// CountByUser counts a user's gemstones.
func (r *gemstoneRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Gemstone{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ReplaceImages swaps a gemstone's image set in one transaction.
func (r *gemstoneRepository) ReplaceImages(ctx context.Context, gemstoneID uuid.UUID, images []model.GemstoneImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gemstone_id = ?", gemstoneID).Delete(&model.GemstoneImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

// IncrementViewCount bumps the denormalized view counter.
func (r *gemstoneRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Gemstone{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
