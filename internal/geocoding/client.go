package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"wandora/internal/geo"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Location is one forward-geocoding hit.
type Location struct {
	ID        string      `json:"id"`
	PlaceName string      `json:"place_name"`
	Center    geo.Point   `json:"center"`
	BBox      *geo.Bounds `json:"bbox,omitempty"`
}

// Client talks to the Mapbox geocoding endpoints. Transport failures are
// swallowed: searches yield an empty result set and reverse lookups an empty
// label, with the error logged. There is no caching, deduplication, or
// rate-limit handling.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a geocoding client with the given access token.
func NewClient(accessToken string) *Client {
	return &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used in tests.
func NewClientWithBaseURL(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = baseURL
	return c
}

type featureResponse struct {
	Features []struct {
		ID        string    `json:"id"`
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
		BBox      []float64 `json:"bbox"`
	} `json:"features"`
}

// SearchLocations forward-geocodes a free-text query into candidate locations.
func (c *Client) SearchLocations(ctx context.Context, query string) []Location {
	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s",
		c.baseURL, url.PathEscape(query), url.QueryEscape(c.accessToken))

	resp, err := c.fetch(ctx, endpoint)
	if err != nil {
		log.Printf("geocoding search %q: %v", query, err)
		return []Location{}
	}

	results := make([]Location, 0, len(resp.Features))
	for _, f := range resp.Features {
		if len(f.Center) < 2 {
			continue
		}
		loc := Location{
			ID:        f.ID,
			PlaceName: f.PlaceName,
			Center:    geo.Point{Longitude: f.Center[0], Latitude: f.Center[1]},
		}
		if len(f.BBox) == 4 {
			loc.BBox = &geo.Bounds{
				MinLongitude: f.BBox[0],
				MinLatitude:  f.BBox[1],
				MaxLongitude: f.BBox[2],
				MaxLatitude:  f.BBox[3],
			}
		}
		results = append(results, loc)
	}
	return results
}

// ReverseGeocode resolves coordinates to the best-match place name, or an
// empty string when nothing matched or the lookup failed.
func (c *Client) ReverseGeocode(ctx context.Context, longitude, latitude float64) string {
	endpoint := fmt.Sprintf("%s/%g,%g.json?access_token=%s",
		c.baseURL, longitude, latitude, url.QueryEscape(c.accessToken))

	resp, err := c.fetch(ctx, endpoint)
	if err != nil {
		log.Printf("reverse geocoding (%g, %g): %v", longitude, latitude, err)
		return ""
	}
	if len(resp.Features) == 0 {
		return ""
	}
	return resp.Features[0].PlaceName
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*featureResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var parsed featureResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
