package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"wandora/internal/geo"
)

func TestClient_SearchLocations(t *testing.T) {
	t.Run("parses features into locations", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Reykjavik.json", r.URL.Path)
			assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"features": [
					{
						"id": "place.1",
						"place_name": "Reykjavík, Iceland",
						"center": [-21.8277, 64.1265],
						"bbox": [-21.98, 64.04, -21.7, 64.17]
					},
					{
						"id": "place.2",
						"place_name": "Reykjavik, Manitoba, Canada",
						"center": [-97.8, 50.9]
					}
				]
			}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		results := client.SearchLocations(context.Background(), "Reykjavik")

		assert.Len(t, results, 2)
		assert.Equal(t, "place.1", results[0].ID)
		assert.Equal(t, "Reykjavík, Iceland", results[0].PlaceName)
		assert.Equal(t, geo.Point{Longitude: -21.8277, Latitude: 64.1265}, results[0].Center)
		assert.NotNil(t, results[0].BBox)
		assert.Equal(t, -21.98, results[0].BBox.MinLongitude)
		assert.Equal(t, 64.17, results[0].BBox.MaxLatitude)
		assert.Nil(t, results[1].BBox)
	})

	t.Run("skips features without a usable center", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features": [{"id": "place.3", "place_name": "Nowhere", "center": []}]}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		results := client.SearchLocations(context.Background(), "Nowhere")
		assert.Empty(t, results)
	})

	t.Run("server error yields empty results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		results := client.SearchLocations(context.Background(), "anywhere")
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("unreachable endpoint yields empty results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		results := client.SearchLocations(context.Background(), "anywhere")
		assert.Empty(t, results)
	})
}

func TestClient_ReverseGeocode(t *testing.T) {
	t.Run("returns the best match place name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/-74.006,40.7128.json", r.URL.Path)
			w.Write([]byte(`{"features": [{"id": "address.1", "place_name": "New York, New York, United States", "center": [-74.006, 40.7128]}]}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		name := client.ReverseGeocode(context.Background(), -74.006, 40.7128)
		assert.Equal(t, "New York, New York, United States", name)
	})

	t.Run("no match yields empty label", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features": []}`))
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		assert.Equal(t, "", client.ReverseGeocode(context.Background(), 0, 0))
	})

	t.Run("server error yields empty label", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClientWithBaseURL("tok", server.URL)
		assert.Equal(t, "", client.ReverseGeocode(context.Background(), -74.006, 40.7128))
	})
}
