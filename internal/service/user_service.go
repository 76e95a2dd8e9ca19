package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wandora/internal/cache"
	"wandora/internal/errors"
	"wandora/internal/model"
	"wandora/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	Location  *string
	AvatarURL *string
}

// UserService handles profile and follow operations.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*model.User, error)
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	ListGemstones(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error)
	ListSavedGemstones(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error)
}

type userService struct {
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	gemstoneRepo repository.GemstoneRepository
	cache        *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, gemstoneRepo repository.GemstoneRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo:     userRepo,
		followRepo:   followRepo,
		gemstoneRepo: gemstoneRepo,
		cache:        cache,
	}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

// GetProfile retrieves a user with follower/following/gemstone counts.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.FollowerCount, err = s.followRepo.CountFollowers(ctx, id); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if user.FollowingCount, err = s.followRepo.CountFollowing(ctx, id); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	if user.GemstoneCount, err = s.gemstoneRepo.CountByUser(ctx, id); err != nil {
		return nil, fmt.Errorf("count gemstones: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, profileCacheTTL)
	return user, nil
}

// UpdateProfile applies the given fields to the user's own profile.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

// Follow creates a follow relation. Following an already-followed user is a
// no-op; following yourself is rejected.
func (s *userService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return errors.ErrSelfFollow
	}

	if _, err := s.userRepo.FindByID(ctx, followingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	_, err := s.followRepo.Find(ctx, followerID, followingID)
	if err == nil {
		return nil // already following
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check follow: %w", err)
	}

	follow := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(followerID))
	_ = s.cache.Delete(ctx, s.cacheKey(followingID))
	return nil
}

// Unfollow removes a follow relation; removing a missing one is a no-op.
func (s *userService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if err := s.followRepo.Delete(ctx, followerID, followingID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(followerID))
	_ = s.cache.Delete(ctx, s.cacheKey(followingID))
	return nil
}

// IsFollowing reports whether follower follows following. A missing relation
// is an expected outcome, not an error.
func (s *userService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	_, err := s.followRepo.Find(ctx, followerID, followingID)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return true, nil
}

// ListGemstones returns a user's own gemstones.
func (s *userService) ListGemstones(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error) {
	return s.gemstoneRepo.ListByUser(ctx, userID)
}

// ListSavedGemstones returns the gemstones a user bookmarked.
func (s *userService) ListSavedGemstones(ctx context.Context, userID uuid.UUID) ([]model.Gemstone, error) {
	return s.gemstoneRepo.ListSavedByUser(ctx, userID)
}
