package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GemstoneLike marks that a user liked a gemstone, at most once per pair.
type GemstoneLike struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GemstoneID uuid.UUID `json:"gemstone_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_like"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_like"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *GemstoneLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// SavedGemstone is a user's bookmark of a gemstone, at most once per pair.
type SavedGemstone struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GemstoneID uuid.UUID `json:"gemstone_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_save"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_save"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *SavedGemstone) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// GemstoneRating is a viewer's 1-5 star rating, one per user per gemstone.
type GemstoneRating struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GemstoneID uuid.UUID `json:"gemstone_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_rating"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_gemstone_user_rating"`
	Rating     int       `json:"rating" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *GemstoneRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GemstoneView records a single viewing; every view is kept.
type GemstoneView struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GemstoneID uuid.UUID `json:"gemstone_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (v *GemstoneView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Follow links a follower to the user they follow, at most once per pair.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
