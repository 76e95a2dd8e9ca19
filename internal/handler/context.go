package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wandora/internal/auth"
)

// currentUserID extracts the authenticated user from the JWT middleware
// context. The second return is false on routes where auth is optional and
// no valid token was presented.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
