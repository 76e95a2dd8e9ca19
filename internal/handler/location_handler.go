package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wandora/internal/geo"
	"wandora/internal/service"
)

// LocationHandler handles geocoding, picker, and map endpoints.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ResolveLocationRequest selects one way of picking a location.
type ResolveLocationRequest struct {
	Query      string   `json:"query,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	UseCurrent bool     `json:"use_current,omitempty"`
}

// Search godoc
// @Summary Forward-geocode a free-text location query
// @Tags locations
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} geocoding.Location
// @Router /locations/search [get]
func (h *LocationHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query parameter q")
	}
	return c.JSON(http.StatusOK, h.locationService.Search(c.Request().Context(), query))
}

// Reverse godoc
// @Summary Reverse-geocode coordinates to a place label
// @Tags locations
// @Produce json
// @Param lng query number true "Longitude"
// @Param lat query number true "Latitude"
// @Success 200 {object} map[string]string
// @Router /locations/reverse [get]
func (h *LocationHandler) Reverse(c echo.Context) error {
	lng, err1 := strconv.ParseFloat(c.QueryParam("lng"), 64)
	lat, err2 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err1 != nil || err2 != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng and lat must be numbers")
	}

	label := h.locationService.Reverse(c.Request().Context(), lng, lat)
	return c.JSON(http.StatusOK, map[string]string{"label": label})
}

// Resolve godoc
// @Summary Resolve a picker request to a (lat, lng, label) tuple
// @Tags locations
// @Accept json
// @Produce json
// @Param request body ResolveLocationRequest true "Pick by query, coordinates, or current position"
// @Success 200 {object} service.ResolvedLocation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /locations/resolve [post]
func (h *LocationHandler) Resolve(c echo.Context) error {
	var req ResolveLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resolved, err := h.locationService.Resolve(c.Request().Context(), service.ResolveRequest{
		Query:      req.Query,
		Longitude:  req.Longitude,
		Latitude:   req.Latitude,
		UseCurrent: req.UseCurrent,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, resolved)
}

// MapView godoc
// @Summary Markers, bounds, and map config for the browse-by-map page
// @Tags locations
// @Produce json
// @Param search query string false "Case-insensitive substring filter"
// @Success 200 {object} service.MapView
// @Router /map [get]
func (h *LocationHandler) MapView(c echo.Context) error {
	view, err := h.locationService.MapView(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// StaticMap godoc
// @Summary Static map image URL for a gemstone
// @Tags locations
// @Produce json
// @Param id path string true "Gemstone ID"
// @Param zoom query int false "Zoom level (default 12)"
// @Param width query int false "Image width (default 400)"
// @Param height query int false "Image height (default 300)"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /gemstones/{id}/static-map [get]
func (h *LocationHandler) StaticMap(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	opts := geo.StaticMapOptions{Marker: true}
	if zoom, err := strconv.Atoi(c.QueryParam("zoom")); err == nil {
		opts.Zoom = zoom
	}
	if width, err := strconv.Atoi(c.QueryParam("width")); err == nil {
		opts.Width = width
	}
	if height, err := strconv.Atoi(c.QueryParam("height")); err == nil {
		opts.Height = height
	}

	url, err := h.locationService.StaticMapURL(c.Request().Context(), id, opts)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
