package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wandora/internal/service"
)

// GemstoneHandler handles gemstone CRUD and interaction endpoints.
type GemstoneHandler struct {
	gemstoneService service.GemstoneService
}

// NewGemstoneHandler creates a new gemstone handler.
func NewGemstoneHandler(gemstoneService service.GemstoneService) *GemstoneHandler {
	return &GemstoneHandler{gemstoneService: gemstoneService}
}

// GemstoneRequest represents a create or update payload.
type GemstoneRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"required"`
	LocationName string   `json:"location_name" validate:"required,max=255"`
	Latitude     float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64  `json:"longitude" validate:"min=-180,max=180"`
	UserRating   *int     `json:"user_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ImageURLs    []string `json:"image_urls"`
}

// RateRequest represents a rating payload.
type RateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// ToggleResponse reports the state after a like or save toggle.
type ToggleResponse struct {
	Liked     *bool  `json:"liked,omitempty"`
	Saved     *bool  `json:"saved,omitempty"`
	LikeCount *int64 `json:"like_count,omitempty"`
}

func (r GemstoneRequest) toInput() service.GemstoneInput {
	return service.GemstoneInput{
		Title:        r.Title,
		Description:  r.Description,
		LocationName: r.LocationName,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		UserRating:   r.UserRating,
		ImageURLs:    r.ImageURLs,
	}
}

// Create godoc
// @Summary Share a new gemstone
// @Tags gemstones
// @Accept json
// @Produce json
// @Param request body GemstoneRequest true "Gemstone payload"
// @Success 201 {object} model.Gemstone
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones [post]
func (h *GemstoneHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req GemstoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gemstone, err := h.gemstoneService.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, gemstone)
}

// Get godoc
// @Summary Get a gemstone with author, images, and viewer state
// @Tags gemstones
// @Produce json
// @Param id path string true "Gemstone ID"
// @Success 200 {object} model.Gemstone
// @Failure 404 {object} errors.ErrorResponse
// @Router /gemstones/{id} [get]
func (h *GemstoneHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var viewerID *uuid.UUID
	if userID, ok := currentUserID(c); ok {
		viewerID = &userID
	}

	gemstone, err := h.gemstoneService.Get(c.Request().Context(), id, viewerID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gemstone)
}

// Update godoc
// @Summary Update an owned gemstone
// @Tags gemstones
// @Accept json
// @Produce json
// @Param id path string true "Gemstone ID"
// @Param request body GemstoneRequest true "Gemstone payload"
// @Success 200 {object} model.Gemstone
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones/{id} [put]
func (h *GemstoneHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req GemstoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gemstone, err := h.gemstoneService.Update(c.Request().Context(), userID, id, req.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gemstone)
}

// Delete godoc
// @Summary Delete an owned gemstone
// @Tags gemstones
// @Produce json
// @Param id path string true "Gemstone ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones/{id} [delete]
func (h *GemstoneHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.gemstoneService.Delete(c.Request().Context(), userID, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "gemstone deleted"})
}

// List godoc
// @Summary Browse gemstones, newest first, optionally filtered
// @Tags gemstones
// @Produce json
// @Param search query string false "Case-insensitive substring over title, description, location, author"
// @Success 200 {array} model.Gemstone
// @Router /gemstones [get]
func (h *GemstoneHandler) List(c echo.Context) error {
	gemstones, err := h.gemstoneService.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gemstones)
}

// ToggleLike godoc
// @Summary Toggle the viewer's like on a gemstone
// @Tags gemstones
// @Produce json
// @Param id path string true "Gemstone ID"
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones/{id}/like [post]
func (h *GemstoneHandler) ToggleLike(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	liked, likeCount, err := h.gemstoneService.ToggleLike(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ToggleResponse{Liked: &liked, LikeCount: &likeCount})
}

// ToggleSave godoc
// @Summary Toggle the viewer's bookmark on a gemstone
// @Tags gemstones
// @Produce json
// @Param id path string true "Gemstone ID"
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones/{id}/save [post]
func (h *GemstoneHandler) ToggleSave(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	saved, err := h.gemstoneService.ToggleSave(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, ToggleResponse{Saved: &saved})
}

// Rate godoc
// @Summary Rate a gemstone 1-5 stars
// @Tags gemstones
// @Accept json
// @Produce json
// @Param id path string true "Gemstone ID"
// @Param request body RateRequest true "Rating"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /gemstones/{id}/rating [put]
func (h *GemstoneHandler) Rate(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	average, err := h.gemstoneService.Rate(c.Request().Context(), userID, id, req.Rating)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"average_rating": average})
}
