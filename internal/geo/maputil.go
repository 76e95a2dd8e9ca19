package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371

// Point is a geographic coordinate pair.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// MapConfig holds the default interactive map configuration.
type MapConfig struct {
	Style   string  `json:"style"`
	Center  Point   `json:"center"`
	Zoom    float64 `json:"zoom"`
	MinZoom float64 `json:"min_zoom"`
	MaxZoom float64 `json:"max_zoom"`
}

// ClusterConfig holds the static marker clustering configuration.
type ClusterConfig struct {
	MaxZoom   int `json:"cluster_max_zoom"`
	Radius    int `json:"cluster_radius"`
	MinPoints int `json:"cluster_min_points"`
}

// DefaultMapConfig returns the map defaults: NYC center, zoom bounds 1-18.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Style:   "mapbox://styles/mapbox/streets-v12",
		Center:  Point{Longitude: -74.006, Latitude: 40.7128},
		Zoom:    2,
		MinZoom: 1,
		MaxZoom: 18,
	}
}

// DefaultClusterConfig returns the fixed clustering thresholds.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		MaxZoom:   14,
		Radius:    50,
		MinPoints: 2,
	}
}

// ValidateCoordinates reports whether the pair is within geographic ranges:
// longitude in [-180,180] and latitude in [-90,90].
func ValidateCoordinates(longitude, latitude float64) bool {
	return longitude >= -180 && longitude <= 180 &&
		latitude >= -90 && latitude <= 90
}

// Distance returns the haversine great-circle distance between two points
// in kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// FormatCoordinates renders a coordinate pair with hemisphere letters,
// e.g. "40.712800°N, 74.006000°W".
func FormatCoordinates(longitude, latitude float64) string {
	lat := fmt.Sprintf("%.6f°N", latitude)
	if latitude < 0 {
		lat = fmt.Sprintf("%.6f°S", -latitude)
	}
	lng := fmt.Sprintf("%.6f°E", longitude)
	if longitude < 0 {
		lng = fmt.Sprintf("%.6f°W", -longitude)
	}
	return lat + ", " + lng
}

// Bounds is an axis-aligned bounding box over coordinates.
type Bounds struct {
	MinLongitude float64 `json:"min_longitude"`
	MinLatitude  float64 `json:"min_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p Point) {
	b.MinLongitude = math.Min(b.MinLongitude, p.Longitude)
	b.MinLatitude = math.Min(b.MinLatitude, p.Latitude)
	b.MaxLongitude = math.Max(b.MaxLongitude, p.Longitude)
	b.MaxLatitude = math.Max(b.MaxLatitude, p.Latitude)
}

// Contains reports whether p lies inside the box.
func (b *Bounds) Contains(p Point) bool {
	return p.Longitude >= b.MinLongitude && p.Longitude <= b.MaxLongitude &&
		p.Latitude >= b.MinLatitude && p.Latitude <= b.MaxLatitude
}

// Center returns the midpoint of the box.
func (b *Bounds) Center() Point {
	return Point{
		Longitude: (b.MinLongitude + b.MaxLongitude) / 2,
		Latitude:  (b.MinLatitude + b.MaxLatitude) / 2,
	}
}

// BoundsOf folds the points into an extending bounding box.
// It returns nil for an empty input; a single point yields a degenerate box.
func BoundsOf(points []Point) *Bounds {
	if len(points) == 0 {
		return nil
	}
	b := &Bounds{
		MinLongitude: points[0].Longitude,
		MinLatitude:  points[0].Latitude,
		MaxLongitude: points[0].Longitude,
		MaxLatitude:  points[0].Latitude,
	}
	for _, p := range points[1:] {
		b.Extend(p)
	}
	return b
}

// StaticMapOptions parameterizes a static map image URL.
type StaticMapOptions struct {
	Longitude float64
	Latitude  float64
	Zoom      int
	Width     int
	Height    int
	Marker    bool
}

const staticMapBaseURL = "https://api.mapbox.com/styles/v1/mapbox/streets-v12/static"

// StaticMapURL builds a Mapbox Static Images API URL. Zero-valued zoom,
// width, and height fall back to 12, 400, and 300.
func StaticMapURL(opts StaticMapOptions, accessToken string) string {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = 12
	}
	width := opts.Width
	if width == 0 {
		width = 400
	}
	height := opts.Height
	if height == 0 {
		height = 300
	}

	url := staticMapBaseURL
	if opts.Marker {
		url += fmt.Sprintf("/pin-s+ff6b6b(%g,%g)", opts.Longitude, opts.Latitude)
	}
	url += fmt.Sprintf("/%g,%g,%d/%dx%d?access_token=%s",
		opts.Longitude, opts.Latitude, zoom, width, height, accessToken)
	return url
}
