package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wandora/internal/cache"
	"wandora/internal/errors"
	"wandora/internal/events"
	"wandora/internal/geo"
	"wandora/internal/model"
	"wandora/internal/repository"
)

const gemstoneCacheTTL = 2 * time.Minute

// GemstoneInput carries the fields for creating or updating a gemstone.
type GemstoneInput struct {
	Title        string
	Description  string
	LocationName string
	Latitude     float64
	Longitude    float64
	UserRating   *int
	ImageURLs    []string
}

// ImageStore is the slice of object storage the gemstone service needs to
// clean up image objects on delete.
type ImageStore interface {
	Delete(ctx context.Context, objectName string) error
	ObjectKey(publicURL string) string
}

// GemstoneService handles gemstone CRUD and interactions.
type GemstoneService interface {
	Create(ctx context.Context, userID uuid.UUID, input GemstoneInput) (*model.Gemstone, error)
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Gemstone, error)
	Update(ctx context.Context, userID, id uuid.UUID, input GemstoneInput) (*model.Gemstone, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, search string) ([]model.Gemstone, error)
	ToggleLike(ctx context.Context, userID, gemstoneID uuid.UUID) (liked bool, likeCount int64, err error)
	ToggleSave(ctx context.Context, userID, gemstoneID uuid.UUID) (saved bool, err error)
	Rate(ctx context.Context, userID, gemstoneID uuid.UUID, rating int) (average string, err error)
}

type gemstoneService struct {
	gemstoneRepo    repository.GemstoneRepository
	interactionRepo repository.InteractionRepository
	cache           *cache.Client
	images          ImageStore
	publisher       *events.Publisher
}

// NewGemstoneService creates a new gemstone service.
func NewGemstoneService(
	gemstoneRepo repository.GemstoneRepository,
	interactionRepo repository.InteractionRepository,
	cache *cache.Client,
	images ImageStore,
	publisher *events.Publisher,
) GemstoneService {
	return &gemstoneService{
		gemstoneRepo:    gemstoneRepo,
		interactionRepo: interactionRepo,
		cache:           cache,
		images:          images,
		publisher:       publisher,
	}
}

func (s *gemstoneService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("gemstone:%s", id.String())
}

func validateInput(input GemstoneInput) error {
	if !geo.ValidateCoordinates(input.Longitude, input.Latitude) {
		return errors.ErrInvalidCoordinates
	}
	if input.UserRating != nil && (*input.UserRating < 1 || *input.UserRating > 5) {
		return errors.ErrInvalidRating
	}
	return nil
}

func imagesFromURLs(gemstoneID uuid.UUID, urls []string) []model.GemstoneImage {
	images := make([]model.GemstoneImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, model.GemstoneImage{
			GemstoneID:   gemstoneID,
			ImageURL:     url,
			DisplayOrder: i,
		})
	}
	return images
}

// Create stores a new gemstone owned by userID with its ordered images.
func (s *gemstoneService) Create(ctx context.Context, userID uuid.UUID, input GemstoneInput) (*model.Gemstone, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	gemstone := &model.Gemstone{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		LocationName: input.LocationName,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		UserRating:   input.UserRating,
	}
	gemstone.Images = imagesFromURLs(gemstone.ID, input.ImageURLs)

	if err := s.gemstoneRepo.Create(ctx, gemstone); err != nil {
		return nil, fmt.Errorf("create gemstone: %w", err)
	}

	s.publisher.Publish(events.InteractionEvent{
		Type:       events.TypeGemstoneCreated,
		GemstoneID: gemstone.ID,
		UserID:     userID,
	})
	return gemstone, nil
}

// Get fetches a gemstone with author and ordered images. When a viewer is
// present, a view is recorded and their like/save/rating state resolved.
func (s *gemstoneService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Gemstone, error) {
	gemstone, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if sum, count, err := s.interactionRepo.RatingStats(ctx, id); err == nil && count > 0 {
		gemstone.AverageRating = averageRating(sum, count)
	}

	if viewerID != nil {
		s.trackView(ctx, id, *viewerID)
		s.resolveViewerState(ctx, gemstone, *viewerID)
	}
	return gemstone, nil
}

func (s *gemstoneService) fetch(ctx context.Context, id uuid.UUID) (*model.Gemstone, error) {
	var cached model.Gemstone
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	gemstone, err := s.gemstoneRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGemstoneNotFound
		}
		return nil, fmt.Errorf("find gemstone: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), gemstone, gemstoneCacheTTL)
	return gemstone, nil
}

// trackView records the viewing; failures are ignored.
func (s *gemstoneService) trackView(ctx context.Context, gemstoneID, viewerID uuid.UUID) {
	view := &model.GemstoneView{GemstoneID: gemstoneID, UserID: viewerID}
	if err := s.interactionRepo.CreateView(ctx, view); err != nil {
		log.Printf("track view for %s: %v", gemstoneID, err)
		return
	}
	if err := s.gemstoneRepo.IncrementViewCount(ctx, gemstoneID); err != nil {
		log.Printf("increment view count for %s: %v", gemstoneID, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(gemstoneID))
	s.publisher.Publish(events.InteractionEvent{
		Type:       events.TypeGemstoneViewed,
		GemstoneID: gemstoneID,
		UserID:     viewerID,
	})
}

// resolveViewerState fills is_liked, is_saved, and the viewer's rating.
// Missing join rows are the expected outcome, not errors.
func (s *gemstoneService) resolveViewerState(ctx context.Context, gemstone *model.Gemstone, viewerID uuid.UUID) {
	if _, err := s.interactionRepo.FindLike(ctx, gemstone.ID, viewerID); err == nil {
		gemstone.IsLiked = true
	}
	if _, err := s.interactionRepo.FindSave(ctx, gemstone.ID, viewerID); err == nil {
		gemstone.IsSaved = true
	}
	if rating, err := s.interactionRepo.FindRating(ctx, gemstone.ID, viewerID); err == nil {
		gemstone.CurrentUserRating = &rating.Rating
	}
}

// Update modifies an owned gemstone and replaces its image set.
func (s *gemstoneService) Update(ctx context.Context, userID, id uuid.UUID, input GemstoneInput) (*model.Gemstone, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	gemstone, err := s.gemstoneRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGemstoneNotFound
		}
		return nil, fmt.Errorf("find gemstone: %w", err)
	}
	if gemstone.UserID != userID {
		return nil, errors.ErrForbidden
	}

	gemstone.Title = input.Title
	gemstone.Description = input.Description
	gemstone.LocationName = input.LocationName
	gemstone.Latitude = input.Latitude
	gemstone.Longitude = input.Longitude
	gemstone.UserRating = input.UserRating
	gemstone.Images = nil

	if err := s.gemstoneRepo.Update(ctx, gemstone); err != nil {
		return nil, fmt.Errorf("update gemstone: %w", err)
	}

	images := imagesFromURLs(id, input.ImageURLs)
	if err := s.gemstoneRepo.ReplaceImages(ctx, id, images); err != nil {
		return nil, fmt.Errorf("replace images: %w", err)
	}
	gemstone.Images = images
	gemstone.SortImages()

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return gemstone, nil
}

// Delete removes an owned gemstone; its stored image objects are removed
// best effort.
func (s *gemstoneService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	gemstone, err := s.gemstoneRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrGemstoneNotFound
		}
		return fmt.Errorf("find gemstone: %w", err)
	}
	if gemstone.UserID != userID {
		return errors.ErrForbidden
	}

	if err := s.gemstoneRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gemstone: %w", err)
	}

	if s.images != nil {
		for _, img := range gemstone.Images {
			key := s.images.ObjectKey(img.ImageURL)
			if key == "" {
				continue
			}
			if err := s.images.Delete(ctx, key); err != nil {
				log.Printf("delete image object %s: %v", key, err)
			}
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// List returns all gemstones, newest first, filtered by the search term.
func (s *gemstoneService) List(ctx context.Context, search string) ([]model.Gemstone, error) {
	gemstones, err := s.gemstoneRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gemstones: %w", err)
	}
	return FilterGemstones(gemstones, search), nil
}

// FilterGemstones keeps gemstones whose title, description, location name,
// or author name contains the term, case-insensitively. An empty term keeps
// everything. A linear scan, no ranking.
func FilterGemstones(gemstones []model.Gemstone, term string) []model.Gemstone {
	if term == "" {
		return gemstones
	}
	needle := strings.ToLower(term)
	filtered := make([]model.Gemstone, 0, len(gemstones))
	for _, g := range gemstones {
		if strings.Contains(strings.ToLower(g.Title), needle) ||
			strings.Contains(strings.ToLower(g.Description), needle) ||
			strings.Contains(strings.ToLower(g.LocationName), needle) ||
			(g.Author != nil && strings.Contains(strings.ToLower(g.Author.Name), needle)) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// ToggleLike flips the viewer's like on a gemstone. The join-row write and
// the counter move happen in one transaction, and the returned count is the
// value as persisted, so toggling twice restores the original state and count.
func (s *gemstoneService) ToggleLike(ctx context.Context, userID, gemstoneID uuid.UUID) (bool, int64, error) {
	if _, err := s.gemstoneRepo.FindByID(ctx, gemstoneID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, 0, errors.ErrGemstoneNotFound
		}
		return false, 0, fmt.Errorf("find gemstone: %w", err)
	}

	_, err := s.interactionRepo.FindLike(ctx, gemstoneID, userID)
	switch err {
	case nil:
		// liked -> unlike
		likeCount, err := s.interactionRepo.RemoveLike(ctx, gemstoneID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("remove like: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(gemstoneID))
		s.publisher.Publish(events.InteractionEvent{
			Type:       events.TypeGemstoneUnliked,
			GemstoneID: gemstoneID,
			UserID:     userID,
		})
		return false, likeCount, nil
	case gorm.ErrRecordNotFound:
		// not liked -> like
		like := &model.GemstoneLike{GemstoneID: gemstoneID, UserID: userID}
		likeCount, err := s.interactionRepo.AddLike(ctx, like)
		if err != nil {
			return false, 0, fmt.Errorf("add like: %w", err)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(gemstoneID))
		s.publisher.Publish(events.InteractionEvent{
			Type:       events.TypeGemstoneLiked,
			GemstoneID: gemstoneID,
			UserID:     userID,
		})
		return true, likeCount, nil
	default:
		return false, 0, fmt.Errorf("check like: %w", err)
	}
}

// ToggleSave flips the viewer's bookmark on a gemstone.
func (s *gemstoneService) ToggleSave(ctx context.Context, userID, gemstoneID uuid.UUID) (bool, error) {
	if _, err := s.gemstoneRepo.FindByID(ctx, gemstoneID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrGemstoneNotFound
		}
		return false, fmt.Errorf("find gemstone: %w", err)
	}

	_, err := s.interactionRepo.FindSave(ctx, gemstoneID, userID)
	switch err {
	case nil:
		if err := s.interactionRepo.DeleteSave(ctx, gemstoneID, userID); err != nil {
			return false, fmt.Errorf("delete save: %w", err)
		}
		s.publisher.Publish(events.InteractionEvent{
			Type:       events.TypeGemstoneUnsaved,
			GemstoneID: gemstoneID,
			UserID:     userID,
		})
		return false, nil
	case gorm.ErrRecordNotFound:
		save := &model.SavedGemstone{GemstoneID: gemstoneID, UserID: userID}
		if err := s.interactionRepo.CreateSave(ctx, save); err != nil {
			return false, fmt.Errorf("create save: %w", err)
		}
		s.publisher.Publish(events.InteractionEvent{
			Type:       events.TypeGemstoneSaved,
			GemstoneID: gemstoneID,
			UserID:     userID,
		})
		return true, nil
	default:
		return false, fmt.Errorf("check save: %w", err)
	}
}

// Rate upserts the viewer's 1-5 rating and returns the new average.
func (s *gemstoneService) Rate(ctx context.Context, userID, gemstoneID uuid.UUID, rating int) (string, error) {
	if rating < 1 || rating > 5 {
		return "", errors.ErrInvalidRating
	}
	if _, err := s.gemstoneRepo.FindByID(ctx, gemstoneID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrGemstoneNotFound
		}
		return "", fmt.Errorf("find gemstone: %w", err)
	}

	record := &model.GemstoneRating{GemstoneID: gemstoneID, UserID: userID, Rating: rating}
	if err := s.interactionRepo.UpsertRating(ctx, record); err != nil {
		return "", fmt.Errorf("upsert rating: %w", err)
	}

	sum, count, err := s.interactionRepo.RatingStats(ctx, gemstoneID)
	if err != nil {
		return "", fmt.Errorf("rating stats: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(gemstoneID))
	s.publisher.Publish(events.InteractionEvent{
		Type:       events.TypeGemstoneRated,
		GemstoneID: gemstoneID,
		UserID:     userID,
		Rating:     rating,
	})
	return averageRating(sum, count), nil
}

// averageRating renders sum/count with one decimal place.
func averageRating(sum, count int64) string {
	if count == 0 {
		return ""
	}
	return decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(count)).
		StringFixed(1)
}
