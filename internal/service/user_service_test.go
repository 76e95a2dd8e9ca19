package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"wandora/internal/errors"
	"wandora/internal/model"
)

// MockFollowRepository is a mock implementation of FollowRepository.
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Find(ctx context.Context, followerID, followingID uuid.UUID) (*model.Follow, error) {
	args := m.Called(ctx, followerID, followingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Follow), args.Error(1)
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newUserService(userRepo *MockUserRepository, followRepo *MockFollowRepository, gemstoneRepo *MockGemstoneRepository) UserService {
	return NewUserService(userRepo, followRepo, gemstoneRepo, nil)
}

func TestUserService_GetProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("profile carries counts", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)
		mockGemstones := new(MockGemstoneRepository)

		mockUsers.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Name: "Sarah Chen"}, nil)
		mockFollows.On("CountFollowers", mock.Anything, userID).Return(int64(12), nil)
		mockFollows.On("CountFollowing", mock.Anything, userID).Return(int64(7), nil)
		mockGemstones.On("CountByUser", mock.Anything, userID).Return(int64(3), nil)

		service := newUserService(mockUsers, mockFollows, mockGemstones)
		user, err := service.GetProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), user.FollowerCount)
		assert.Equal(t, int64(7), user.FollowingCount)
		assert.Equal(t, int64(3), user.GemstoneCount)
	})

	t.Run("missing user", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := newUserService(mockUsers, new(MockFollowRepository), new(MockGemstoneRepository))
		_, err := service.GetProfile(context.Background(), userID)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, Name: "Old Name", Bio: "old bio"}, nil)
	mockUsers.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := newUserService(mockUsers, new(MockFollowRepository), new(MockGemstoneRepository))

	newName := "New Name"
	user, err := service.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	// Untouched fields keep their values.
	assert.Equal(t, "old bio", user.Bio)
	mockUsers.AssertExpectations(t)
}

func TestUserService_Follow(t *testing.T) {
	followerID := uuid.New()
	followingID := uuid.New()

	t.Run("creates the relation", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)

		mockUsers.On("FindByID", mock.Anything, followingID).
			Return(&model.User{ID: followingID}, nil)
		mockFollows.On("Find", mock.Anything, followerID, followingID).
			Return(nil, gorm.ErrRecordNotFound)
		mockFollows.On("Create", mock.Anything, mock.AnythingOfType("*model.Follow")).Return(nil)

		service := newUserService(mockUsers, mockFollows, new(MockGemstoneRepository))
		err := service.Follow(context.Background(), followerID, followingID)

		assert.NoError(t, err)
		mockFollows.AssertExpectations(t)
	})

	t.Run("following yourself is rejected", func(t *testing.T) {
		service := newUserService(new(MockUserRepository), new(MockFollowRepository), new(MockGemstoneRepository))
		err := service.Follow(context.Background(), followerID, followerID)
		assert.ErrorIs(t, err, errors.ErrSelfFollow)
	})

	t.Run("already following is a no-op", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockFollows := new(MockFollowRepository)

		mockUsers.On("FindByID", mock.Anything, followingID).
			Return(&model.User{ID: followingID}, nil)
		mockFollows.On("Find", mock.Anything, followerID, followingID).
			Return(&model.Follow{FollowerID: followerID, FollowingID: followingID}, nil)

		service := newUserService(mockUsers, mockFollows, new(MockGemstoneRepository))
		err := service.Follow(context.Background(), followerID, followingID)

		assert.NoError(t, err)
		mockFollows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown target user", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, followingID).Return(nil, gorm.ErrRecordNotFound)

		service := newUserService(mockUsers, new(MockFollowRepository), new(MockGemstoneRepository))
		err := service.Follow(context.Background(), followerID, followingID)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestUserService_IsFollowing(t *testing.T) {
	followerID := uuid.New()
	followingID := uuid.New()

	t.Run("missing relation is false, not an error", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockFollows.On("Find", mock.Anything, followerID, followingID).
			Return(nil, gorm.ErrRecordNotFound)

		service := newUserService(new(MockUserRepository), mockFollows, new(MockGemstoneRepository))
		following, err := service.IsFollowing(context.Background(), followerID, followingID)

		assert.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("existing relation is true", func(t *testing.T) {
		mockFollows := new(MockFollowRepository)
		mockFollows.On("Find", mock.Anything, followerID, followingID).
			Return(&model.Follow{}, nil)

		service := newUserService(new(MockUserRepository), mockFollows, new(MockGemstoneRepository))
		following, err := service.IsFollowing(context.Background(), followerID, followingID)

		assert.NoError(t, err)
		assert.True(t, following)
	})
}
