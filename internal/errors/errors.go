package errors

import (
	"errors"
	"net/http"

	"wandora/internal/geo"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrGemstoneNotFound is returned when a gemstone is not found.
	ErrGemstoneNotFound = errors.New("gemstone not found")
	// ErrInvalidCoordinates is returned when latitude or longitude is out of range.
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	// ErrInvalidRating is returned when a rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrForbidden is returned when a user acts on a resource they do not own.
	ErrForbidden = errors.New("not the owner of this resource")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrGeocodingUnavailable is returned when location resolution produced no result.
	ErrGeocodingUnavailable = errors.New("location could not be resolved")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrGemstoneNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "GEMSTONE_NOT_FOUND")
	case ErrInvalidCoordinates:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COORDINATES")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrSelfFollow:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_FOLLOW")
	case ErrGeocodingUnavailable:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOCATION_NOT_RESOLVED")
	default:
		switch {
		case errors.Is(err, geo.ErrPermissionDenied):
			return NewHTTPError(http.StatusForbidden, geo.CategorizeError(err), "LOCATION_ACCESS_DENIED")
		case errors.Is(err, geo.ErrPositionUnavailable):
			return NewHTTPError(http.StatusServiceUnavailable, geo.CategorizeError(err), "LOCATION_UNAVAILABLE")
		case errors.Is(err, geo.ErrPositionTimeout):
			return NewHTTPError(http.StatusGatewayTimeout, geo.CategorizeError(err), "LOCATION_TIMEOUT")
		}
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
