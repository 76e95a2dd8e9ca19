package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wandora/internal/errors"
	"wandora/internal/geo"
	"wandora/internal/geocoding"
	"wandora/internal/repository"
)

// Geocoder is the forward/reverse geocoding surface the location service uses.
type Geocoder interface {
	SearchLocations(ctx context.Context, query string) []geocoding.Location
	ReverseGeocode(ctx context.Context, longitude, latitude float64) string
}

// ResolveRequest selects exactly one way of picking a location: a free-text
// query, explicit coordinates, or the current position.
type ResolveRequest struct {
	Query      string
	Longitude  *float64
	Latitude   *float64
	UseCurrent bool
}

// ResolvedLocation is the (lat, lng, label) tuple a picker emits.
type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// Marker is a gemstone projected onto the map.
type Marker struct {
	GemstoneID   uuid.UUID `json:"gemstone_id"`
	Title        string    `json:"title"`
	LocationName string    `json:"location_name"`
	Point        geo.Point `json:"point"`
	LikeCount    int64     `json:"like_count"`
	AuthorName   string    `json:"author_name,omitempty"`
}

// MapView is everything a client needs to render the browse-by-map page:
// the filtered marker set, its bounding box, and the fixed map and
// clustering configuration. Markers are rebuilt wholesale per request.
type MapView struct {
	Markers       []Marker          `json:"markers"`
	Bounds        *geo.Bounds       `json:"bounds,omitempty"`
	MapConfig     geo.MapConfig     `json:"map_config"`
	ClusterConfig geo.ClusterConfig `json:"cluster_config"`
}

// LocationService composes geocoding, position access, and the gemstone set
// into the map and picker operations.
type LocationService interface {
	Search(ctx context.Context, query string) []geocoding.Location
	Reverse(ctx context.Context, longitude, latitude float64) string
	Resolve(ctx context.Context, req ResolveRequest) (*ResolvedLocation, error)
	MapView(ctx context.Context, search string) (*MapView, error)
	StaticMapURL(ctx context.Context, gemstoneID uuid.UUID, opts geo.StaticMapOptions) (string, error)
}

type locationService struct {
	geocoder     Geocoder
	locator      *geo.Locator
	gemstoneRepo repository.GemstoneRepository
	mapboxToken  string
}

// NewLocationService creates a new location service.
func NewLocationService(geocoder Geocoder, locator *geo.Locator, gemstoneRepo repository.GemstoneRepository, mapboxToken string) LocationService {
	return &locationService{
		geocoder:     geocoder,
		locator:      locator,
		gemstoneRepo: gemstoneRepo,
		mapboxToken:  mapboxToken,
	}
}

// Search forward-geocodes a free-text query.
func (s *locationService) Search(ctx context.Context, query string) []geocoding.Location {
	return s.geocoder.SearchLocations(ctx, query)
}

// Reverse resolves coordinates to a place label.
func (s *locationService) Reverse(ctx context.Context, longitude, latitude float64) string {
	return s.geocoder.ReverseGeocode(ctx, longitude, latitude)
}

// Resolve turns a picker request into a (lat, lng, label) tuple. Explicit
// coordinates win over a query; a query wins over the current position.
// Last write wins, the service keeps no selection history.
func (s *locationService) Resolve(ctx context.Context, req ResolveRequest) (*ResolvedLocation, error) {
	switch {
	case req.Longitude != nil && req.Latitude != nil:
		lng, lat := *req.Longitude, *req.Latitude
		if !geo.ValidateCoordinates(lng, lat) {
			return nil, errors.ErrInvalidCoordinates
		}
		return &ResolvedLocation{
			Latitude:  lat,
			Longitude: lng,
			Label:     s.geocoder.ReverseGeocode(ctx, lng, lat),
		}, nil

	case req.Query != "":
		results := s.geocoder.SearchLocations(ctx, req.Query)
		if len(results) == 0 {
			return nil, errors.ErrGeocodingUnavailable
		}
		best := results[0]
		return &ResolvedLocation{
			Latitude:  best.Center.Latitude,
			Longitude: best.Center.Longitude,
			Label:     best.PlaceName,
		}, nil

	case req.UseCurrent:
		if s.locator == nil {
			return nil, errors.ErrGeocodingUnavailable
		}
		pos, err := s.locator.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", geo.CategorizeError(err), err)
		}
		return &ResolvedLocation{
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
			Label:     s.geocoder.ReverseGeocode(ctx, pos.Longitude, pos.Latitude),
		}, nil

	default:
		return nil, errors.ErrGeocodingUnavailable
	}
}

// MapView projects the filtered gemstone set onto markers with bounds and
// the fixed map configuration.
func (s *locationService) MapView(ctx context.Context, search string) (*MapView, error) {
	gemstones, err := s.gemstoneRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gemstones: %w", err)
	}
	gemstones = FilterGemstones(gemstones, search)

	markers := make([]Marker, 0, len(gemstones))
	points := make([]geo.Point, 0, len(gemstones))
	for _, g := range gemstones {
		point := geo.Point{Longitude: g.Longitude, Latitude: g.Latitude}
		marker := Marker{
			GemstoneID:   g.ID,
			Title:        g.Title,
			LocationName: g.LocationName,
			Point:        point,
			LikeCount:    g.LikeCount,
		}
		if g.Author != nil {
			marker.AuthorName = g.Author.Name
		}
		markers = append(markers, marker)
		points = append(points, point)
	}

	return &MapView{
		Markers:       markers,
		Bounds:        geo.BoundsOf(points),
		MapConfig:     geo.DefaultMapConfig(),
		ClusterConfig: geo.DefaultClusterConfig(),
	}, nil
}

// StaticMapURL builds the static-map image URL for a gemstone's location.
func (s *locationService) StaticMapURL(ctx context.Context, gemstoneID uuid.UUID, opts geo.StaticMapOptions) (string, error) {
	gemstone, err := s.gemstoneRepo.FindByID(ctx, gemstoneID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrGemstoneNotFound
		}
		return "", fmt.Errorf("find gemstone: %w", err)
	}
	opts.Longitude = gemstone.Longitude
	opts.Latitude = gemstone.Latitude
	return geo.StaticMapURL(opts, s.mapboxToken), nil
}
