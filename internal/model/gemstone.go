package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gemstone represents a shared travel story pinned to a location.
type Gemstone struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	LocationName string         `json:"location_name" gorm:"size:255;not null"`
	Latitude     float64        `json:"latitude" gorm:"not null"`
	Longitude    float64        `json:"longitude" gorm:"not null"`
	UserRating   *int           `json:"user_rating,omitempty"` // owner's own 1-5 stars
	ViewCount    int64          `json:"view_count" gorm:"default:0"`
	LikeCount    int64          `json:"like_count" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Author *User           `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Images []GemstoneImage `json:"images,omitempty" gorm:"foreignKey:GemstoneID"`

	// Viewer-dependent computed fields
	AverageRating     string `json:"average_rating,omitempty" gorm:"-"`
	CurrentUserRating *int   `json:"current_user_rating,omitempty" gorm:"-"`
	IsLiked           bool   `json:"is_liked" gorm:"-"`
	IsSaved           bool   `json:"is_saved" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Gemstone) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// SortImages orders the embedded images ascending by display order.
func (g *Gemstone) SortImages() {
	sort.Slice(g.Images, func(i, j int) bool {
		return g.Images[i].DisplayOrder < g.Images[j].DisplayOrder
	})
}

// GemstoneImage is one photo under a gemstone, ordered by DisplayOrder.
type GemstoneImage struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GemstoneID   uuid.UUID `json:"gemstone_id" gorm:"type:uuid;not null;index"`
	ImageURL     string    `json:"image_url" gorm:"size:1024;not null"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *GemstoneImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
