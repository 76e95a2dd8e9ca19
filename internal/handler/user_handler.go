package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wandora/internal/errors"
	"wandora/internal/service"
)

// UserHandler handles profile and follow endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// domainError converts a domain error to an echo HTTP error.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}

// GetProfile godoc
// @Summary Get a user profile with follower, following, and gemstone counts
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, service.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param id path string true "User ID to follow"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (h *UserHandler) Follow(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Follow(c.Request().Context(), userID, targetID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"following": true})
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Param id path string true "User ID to unfollow"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/follow [delete]
func (h *UserHandler) Unfollow(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Unfollow(c.Request().Context(), userID, targetID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"following": false})
}

// ListGemstones godoc
// @Summary List a user's gemstones
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.Gemstone
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/{id}/gemstones [get]
func (h *UserHandler) ListGemstones(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	gemstones, err := h.userService.ListGemstones(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gemstones)
}

// ListSaved godoc
// @Summary List the authenticated user's saved gemstones
// @Tags users
// @Produce json
// @Success 200 {array} model.Gemstone
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/saved [get]
func (h *UserHandler) ListSaved(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	gemstones, err := h.userService.ListSavedGemstones(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gemstones)
}
