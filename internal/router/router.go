package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"wandora/internal/auth"
	"wandora/internal/config"
	"wandora/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	gemstoneHandler *handler.GemstoneHandler,
	locationHandler *handler.LocationHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	newClaims := func(c echo.Context) jwt.Claims { return new(auth.Claims) }

	// requireJWT rejects requests without a valid token.
	requireJWT := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.JWTSecret),
		NewClaimsFunc: newClaims,
	})

	// optionalJWT parses a token when present so public reads can resolve
	// viewer state, but lets anonymous requests through.
	optionalJWT := echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(cfg.JWTSecret),
		NewClaimsFunc:          newClaims,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})

	api := e.Group("/api")

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public reads
	api.GET("/users/:id", userHandler.GetProfile)
	api.GET("/users/:id/gemstones", userHandler.ListGemstones)
	api.GET("/gemstones", gemstoneHandler.List)
	api.GET("/gemstones/:id", gemstoneHandler.Get, optionalJWT)
	api.GET("/gemstones/:id/static-map", locationHandler.StaticMap)

	// Map and picker
	api.GET("/map", locationHandler.MapView)
	api.GET("/locations/search", locationHandler.Search)
	api.GET("/locations/reverse", locationHandler.Reverse)
	api.POST("/locations/resolve", locationHandler.Resolve)

	// Secured routes
	secured := api.Group("", requireJWT)

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateProfile)
	secured.GET("/me/saved", userHandler.ListSaved)
	secured.POST("/me/avatar", uploadHandler.UploadAvatar)

	secured.POST("/users/:id/follow", userHandler.Follow)
	secured.DELETE("/users/:id/follow", userHandler.Unfollow)

	secured.POST("/gemstones", gemstoneHandler.Create)
	secured.PUT("/gemstones/:id", gemstoneHandler.Update)
	secured.DELETE("/gemstones/:id", gemstoneHandler.Delete)
	secured.POST("/gemstones/:id/like", gemstoneHandler.ToggleLike)
	secured.POST("/gemstones/:id/save", gemstoneHandler.ToggleSave)
	secured.PUT("/gemstones/:id/rating", gemstoneHandler.Rate)

	secured.POST("/uploads/images", uploadHandler.UploadImages)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
