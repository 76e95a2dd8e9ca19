package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"wandora/internal/auth"
)

const testSecret = "test-secret"

func jwtMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(testSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(auth.Claims) },
	})
}

func TestCurrentUserID(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService(testSecret)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		id, ok := currentUserID(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.String(http.StatusOK, id.String())
	}, jwtMiddleware())

	t.Run("valid token resolves the user", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID, "test@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token, err := auth.NewJWTService("other-secret").GenerateAccessToken(userID, "test@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no middleware means no viewer", func(t *testing.T) {
		anon := echo.New()
		var ok bool
		anon.GET("/anon", func(c echo.Context) error {
			_, ok = currentUserID(c)
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/anon", nil)
		rec := httptest.NewRecorder()
		anon.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, ok)
	})
}
