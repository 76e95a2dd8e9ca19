package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a Wandora traveler profile.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	AvatarURL    string         `json:"avatar_url,omitempty" gorm:"size:1024"`
	Bio          string         `json:"bio,omitempty" gorm:"type:text"`
	Location     string         `json:"location,omitempty" gorm:"size:255"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Computed fields, populated on fetch
	FollowerCount  int64 `json:"follower_count,omitempty" gorm:"-"`
	FollowingCount int64 `json:"following_count,omitempty" gorm:"-"`
	GemstoneCount  int64 `json:"gemstone_count,omitempty" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
