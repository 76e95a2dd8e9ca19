package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wandora/docs"

	"wandora/internal/auth"
	"wandora/internal/cache"
	"wandora/internal/config"
	"wandora/internal/db"
	"wandora/internal/events"
	"wandora/internal/geo"
	"wandora/internal/geocoding"
	"wandora/internal/handler"
	"wandora/internal/model"
	"wandora/internal/repository"
	"wandora/internal/router"
	"wandora/internal/service"
	"wandora/internal/storage"
)

// @title Wandora API
// @version 1.0
// @description Travel-story sharing API: gemstones, profiles, likes and saves, and the map/location subsystem.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Gemstone{},
		&model.GemstoneImage{},
		&model.GemstoneLike{},
		&model.SavedGemstone{},
		&model.GemstoneRating{},
		&model.GemstoneView{},
		&model.Follow{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	store, err := storage.New(context.Background(), storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	// The publisher is optional; without a broker the service runs and
	// interaction events are dropped.
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = events.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, interaction events disabled: %v", err)
		} else {
			defer publisher.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	gemstoneRepo := repository.NewGemstoneRepository(gormDB)
	interactionRepo := repository.NewInteractionRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Map/location components. The fixed source anchors "current position"
	// at the default map center for deployments without a position feed.
	geocoder := geocoding.NewClient(cfg.MapboxToken)
	locator := geo.NewLocator(geo.FixedSource{Point: geo.DefaultMapConfig().Center}, geo.LocatorOptions{})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, followRepo, gemstoneRepo, cacheClient)
	gemstoneService := service.NewGemstoneService(gemstoneRepo, interactionRepo, cacheClient, store, publisher)
	locationService := service.NewLocationService(geocoder, locator, gemstoneRepo, cfg.MapboxToken)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	gemstoneHandler := handler.NewGemstoneHandler(gemstoneService)
	locationHandler := handler.NewLocationHandler(locationService)
	uploadHandler := handler.NewUploadHandler(store, userService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		gemstoneHandler,
		locationHandler,
		uploadHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
