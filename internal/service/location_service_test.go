package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"wandora/internal/errors"
	"wandora/internal/geo"
	"wandora/internal/geocoding"
	"wandora/internal/model"
)

// stubGeocoder returns canned geocoding results.
type stubGeocoder struct {
	searchResults []geocoding.Location
	reverseLabel  string
}

func (s *stubGeocoder) SearchLocations(ctx context.Context, query string) []geocoding.Location {
	return s.searchResults
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, longitude, latitude float64) string {
	return s.reverseLabel
}

func TestLocationService_Resolve(t *testing.T) {
	reykjavik := geocoding.Location{
		ID:        "place.1",
		PlaceName: "Reykjavík, Iceland",
		Center:    geo.Point{Longitude: -21.8277, Latitude: 64.1265},
	}

	t.Run("explicit coordinates win over a query", func(t *testing.T) {
		geocoder := &stubGeocoder{searchResults: []geocoding.Location{reykjavik}, reverseLabel: "Somewhere Else"}
		service := NewLocationService(geocoder, nil, new(MockGemstoneRepository), "tok")

		lng, lat := 13.405, 52.52
		resolved, err := service.Resolve(context.Background(), ResolveRequest{
			Query:     "Reykjavik",
			Longitude: &lng,
			Latitude:  &lat,
		})

		assert.NoError(t, err)
		assert.Equal(t, 52.52, resolved.Latitude)
		assert.Equal(t, 13.405, resolved.Longitude)
		assert.Equal(t, "Somewhere Else", resolved.Label)
	})

	t.Run("invalid explicit coordinates", func(t *testing.T) {
		service := NewLocationService(&stubGeocoder{}, nil, new(MockGemstoneRepository), "tok")

		lng, lat := 200.0, 10.0
		_, err := service.Resolve(context.Background(), ResolveRequest{Longitude: &lng, Latitude: &lat})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})

	t.Run("query takes the first hit", func(t *testing.T) {
		geocoder := &stubGeocoder{searchResults: []geocoding.Location{
			reykjavik,
			{PlaceName: "Reykjavik, Manitoba, Canada", Center: geo.Point{Longitude: -97.8, Latitude: 50.9}},
		}}
		service := NewLocationService(geocoder, nil, new(MockGemstoneRepository), "tok")

		resolved, err := service.Resolve(context.Background(), ResolveRequest{Query: "Reykjavik"})

		assert.NoError(t, err)
		assert.Equal(t, 64.1265, resolved.Latitude)
		assert.Equal(t, -21.8277, resolved.Longitude)
		assert.Equal(t, "Reykjavík, Iceland", resolved.Label)
	})

	t.Run("query with no hits", func(t *testing.T) {
		service := NewLocationService(&stubGeocoder{}, nil, new(MockGemstoneRepository), "tok")
		_, err := service.Resolve(context.Background(), ResolveRequest{Query: "xyzzy"})
		assert.ErrorIs(t, err, errors.ErrGeocodingUnavailable)
	})

	t.Run("current position", func(t *testing.T) {
		locator := geo.NewLocator(geo.FixedSource{Point: geo.Point{Longitude: 2.3522, Latitude: 48.8566}}, geo.LocatorOptions{})
		geocoder := &stubGeocoder{reverseLabel: "Paris, France"}
		service := NewLocationService(geocoder, locator, new(MockGemstoneRepository), "tok")

		resolved, err := service.Resolve(context.Background(), ResolveRequest{UseCurrent: true})

		assert.NoError(t, err)
		assert.Equal(t, 48.8566, resolved.Latitude)
		assert.Equal(t, 2.3522, resolved.Longitude)
		assert.Equal(t, "Paris, France", resolved.Label)
	})

	t.Run("empty request", func(t *testing.T) {
		service := NewLocationService(&stubGeocoder{}, nil, new(MockGemstoneRepository), "tok")
		_, err := service.Resolve(context.Background(), ResolveRequest{})
		assert.ErrorIs(t, err, errors.ErrGeocodingUnavailable)
	})
}

func TestLocationService_MapView(t *testing.T) {
	t.Run("markers with bounds and fixed config", func(t *testing.T) {
		mockRepo := new(MockGemstoneRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Gemstone{
			{
				ID:           uuid.New(),
				Title:        "Hidden hot spring",
				LocationName: "Iceland",
				Latitude:     64.1265,
				Longitude:    -21.8277,
				LikeCount:    5,
				Author:       &model.User{Name: "Sarah Chen"},
			},
			{
				ID:           uuid.New(),
				Title:        "Sunset over the bay",
				LocationName: "San Francisco, USA",
				Latitude:     37.7749,
				Longitude:    -122.4194,
			},
		}, nil)

		service := NewLocationService(&stubGeocoder{}, nil, mockRepo, "tok")
		view, err := service.MapView(context.Background(), "")

		assert.NoError(t, err)
		assert.Len(t, view.Markers, 2)
		assert.Equal(t, "Sarah Chen", view.Markers[0].AuthorName)
		assert.NotNil(t, view.Bounds)
		assert.Equal(t, -122.4194, view.Bounds.MinLongitude)
		assert.Equal(t, 64.1265, view.Bounds.MaxLatitude)
		assert.Equal(t, geo.DefaultMapConfig(), view.MapConfig)
		assert.Equal(t, geo.DefaultClusterConfig(), view.ClusterConfig)
	})

	t.Run("search narrows the marker set", func(t *testing.T) {
		mockRepo := new(MockGemstoneRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Gemstone{
			{Title: "Hidden hot spring", LocationName: "Iceland", Latitude: 64.1265, Longitude: -21.8277},
			{Title: "Sunset over the bay", LocationName: "San Francisco, USA", Latitude: 37.7749, Longitude: -122.4194},
		}, nil)

		service := NewLocationService(&stubGeocoder{}, nil, mockRepo, "tok")
		view, err := service.MapView(context.Background(), "iceland")

		assert.NoError(t, err)
		assert.Len(t, view.Markers, 1)
		assert.Equal(t, "Hidden hot spring", view.Markers[0].Title)
	})

	t.Run("no gemstones yields nil bounds", func(t *testing.T) {
		mockRepo := new(MockGemstoneRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Gemstone{}, nil)

		service := NewLocationService(&stubGeocoder{}, nil, mockRepo, "tok")
		view, err := service.MapView(context.Background(), "")

		assert.NoError(t, err)
		assert.Empty(t, view.Markers)
		assert.Nil(t, view.Bounds)
	})
}

func TestLocationService_StaticMapURL(t *testing.T) {
	gemstoneID := uuid.New()

	t.Run("uses the gemstone's coordinates", func(t *testing.T) {
		mockRepo := new(MockGemstoneRepository)
		mockRepo.On("FindByID", mock.Anything, gemstoneID).
			Return(&model.Gemstone{ID: gemstoneID, Latitude: 40.7128, Longitude: -74.006}, nil)

		service := NewLocationService(&stubGeocoder{}, nil, mockRepo, "tok")
		url, err := service.StaticMapURL(context.Background(), gemstoneID, geo.StaticMapOptions{Marker: true})

		assert.NoError(t, err)
		assert.Contains(t, url, "pin-s+ff6b6b(-74.006,40.7128)")
		assert.Contains(t, url, "access_token=tok")
	})

	t.Run("missing gemstone", func(t *testing.T) {
		mockRepo := new(MockGemstoneRepository)
		mockRepo.On("FindByID", mock.Anything, gemstoneID).Return(nil, gorm.ErrRecordNotFound)

		service := NewLocationService(&stubGeocoder{}, nil, mockRepo, "tok")
		_, err := service.StaticMapURL(context.Background(), gemstoneID, geo.StaticMapOptions{})
		assert.ErrorIs(t, err, errors.ErrGemstoneNotFound)
	})
}
