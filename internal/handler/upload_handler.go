package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wandora/internal/service"
	"wandora/internal/storage"
)

// UploadHandler handles multipart image and avatar uploads.
type UploadHandler struct {
	store       *storage.Store
	userService service.UserService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store *storage.Store, userService service.UserService) *UploadHandler {
	return &UploadHandler{store: store, userService: userService}
}

// UploadResult reports one uploaded or failed file.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadImages godoc
// @Summary Upload gemstone images
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Image files"
// @Success 200 {object} map[string][]UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /uploads/images [post]
func (h *UploadHandler) UploadImages(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to parse multipart form")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files uploaded")
	}

	var uploaded, failed []UploadResult
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			failed = append(failed, UploadResult{Filename: file.Filename, Error: "could not open file"})
			continue
		}

		objectName := fmt.Sprintf("gemstones/%s/%s%s", userID, uuid.New(), filepath.Ext(file.Filename))
		url, err := h.store.Upload(c.Request().Context(), objectName, src, file.Size, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			failed = append(failed, UploadResult{Filename: file.Filename, Error: "upload failed"})
			continue
		}
		uploaded = append(uploaded, UploadResult{Filename: file.Filename, URL: url})
	}

	return c.JSON(http.StatusOK, map[string][]UploadResult{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// UploadAvatar godoc
// @Summary Upload an avatar and set it on the profile
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/avatar [post]
func (h *UploadHandler) UploadAvatar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not open file")
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%s%s", userID, filepath.Ext(file.Filename))
	url, err := h.store.Upload(c.Request().Context(), objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, service.ProfileUpdate{
		AvatarURL: &url,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}
