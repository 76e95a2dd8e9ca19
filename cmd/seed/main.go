package main

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wandora/internal/config"
	"wandora/internal/db"
	"wandora/internal/model"
	"wandora/internal/repository"
)

// seedGemstone is one demo story with its author.
type seedGemstone struct {
	Title       string
	Author      string
	Location    string
	Latitude    float64
	Longitude   float64
	ImageURL    string
	Description string
	Likes       int64
}

var demoGemstones = []seedGemstone{
	{
		Title:       "Hidden Waterfalls of Iceland",
		Author:      "Emma Kowalski",
		Location:    "Reykjavik, Iceland",
		Latitude:    64.1466,
		Longitude:   -21.9426,
		ImageURL:    "https://images.unsplash.com/photo-1433086966358-54859d0ed716?w=800&h=600&fit=crop",
		Description: "Discovering a secret waterfall that locals rarely share with tourists. After days of research and conversations with locals, I found myself standing before one of Iceland's most breathtaking hidden gems.",
		Likes:       127,
	},
	{
		Title:       "Street Art in Buenos Aires",
		Author:      "Carlos Rodriguez",
		Location:    "Buenos Aires, Argentina",
		Latitude:    -34.6037,
		Longitude:   -58.3816,
		ImageURL:    "https://images.unsplash.com/photo-1487958449943-2429e8be8625?w=800&h=600&fit=crop",
		Description: "The hidden murals that tell stories of a neighborhood's transformation. Walking through the winding streets of Palermo, each wall seemed to whisper tales of resilience and creativity.",
		Likes:       89,
	},
	{
		Title:       "Sunrise at Mount Fuji",
		Author:      "Yuki Tanaka",
		Location:    "Fujinomiya, Japan",
		Latitude:    35.2216,
		Longitude:   138.6213,
		ImageURL:    "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=800&h=600&fit=crop",
		Description: "The spiritual journey to witness dawn break over Japan's sacred mountain. At 4 AM, surrounded by pilgrims and photographers, I understood why this moment is considered sacred.",
		Likes:       203,
	},
	{
		Title:       "Night Markets of Taipei",
		Author:      "Lisa Chen",
		Location:    "Taipei, Taiwan",
		Latitude:    25.0330,
		Longitude:   121.5654,
		ImageURL:    "https://images.unsplash.com/photo-1500673922987-e212871fec22?w=800&h=600&fit=crop",
		Description: "Following the scent of xiaolongbao through narrow alleyways. The real magic of Taipei happens after sunset, when the city transforms into a food lover's paradise.",
		Likes:       156,
	},
	{
		Title:       "Sahara Desert Camping",
		Author:      "Ahmed Hassan",
		Location:    "Merzouga, Morocco",
		Latitude:    31.0994,
		Longitude:   -4.0084,
		ImageURL:    "https://images.unsplash.com/photo-1509316975850-ff9c5deb0cd9?w=800&h=600&fit=crop",
		Description: "Sleeping under a blanket of stars with nothing but sand dunes for miles. The silence of the Sahara is unlike anything I've ever experienced - it's profound and transformative.",
		Likes:       74,
	},
	{
		Title:       "Floating Markets of Bangkok",
		Author:      "Siriporn Wannakul",
		Location:    "Bangkok, Thailand",
		Latitude:    13.7563,
		Longitude:   100.5018,
		ImageURL:    "https://images.unsplash.com/photo-1500375592092-40eb2168fd21?w=800&h=600&fit=crop",
		Description: "Navigating the colorful chaos of Thailand's most authentic floating market. Away from tourist crowds, vendors sell fresh fruits and handmade goods from their wooden boats.",
		Likes:       112,
	},
	{
		Title:       "Northern Lights in Lapland",
		Author:      "Astrid Lindqvist",
		Location:    "Rovaniemi, Finland",
		Latitude:    66.5039,
		Longitude:   25.7294,
		ImageURL:    "https://images.unsplash.com/photo-1472396961693-142e6e269027?w=800&h=600&fit=crop",
		Description: "Chasing the aurora borealis through the Arctic wilderness. Standing in -30°C temperatures, watching the sky dance in emerald greens and cosmic purples was absolutely magical.",
		Likes:       198,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
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

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	gemstoneRepo := repository.NewGemstoneRepository(gormDB)

	created := 0
	for _, seed := range demoGemstones {
		user, err := ensureUser(ctx, userRepo, seed.Author)
		if err != nil {
			log.Fatalf("seed user %s: %v", seed.Author, err)
		}

		gemstone := &model.Gemstone{
			UserID:       user.ID,
			Title:        seed.Title,
			Description:  seed.Description,
			LocationName: seed.Location,
			Latitude:     seed.Latitude,
			Longitude:    seed.Longitude,
			LikeCount:    seed.Likes,
			Images: []model.GemstoneImage{
				{ImageURL: seed.ImageURL, DisplayOrder: 0},
			},
		}
		if err := gemstoneRepo.Create(ctx, gemstone); err != nil {
			log.Fatalf("seed gemstone %q: %v", seed.Title, err)
		}
		created++
	}

	log.Printf("Seed complete: %d gemstones created", created)
}

// ensureUser finds or creates a demo account for an author name.
func ensureUser(ctx context.Context, repo repository.UserRepository, name string) (*model.User, error) {
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"

	user, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("wandora-demo"), 10)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
