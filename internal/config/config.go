package config

import "github.com/spf13/viper"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	PostgresDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	RabbitMQURL string

	MapboxToken string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("POSTGRES_DSN", "host=localhost user=wandora password=wandora dbname=wandora port=5432 sslmode=disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "gemstone-images")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.AutomaticEnv()

	return &Config{
		ServerPort:     viper.GetString("SERVER_PORT"),
		PostgresDSN:    viper.GetString("POSTGRES_DSN"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisDB:        viper.GetInt("REDIS_DB"),
		RedisPass:      viper.GetString("REDIS_PASSWORD"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioBucket:    viper.GetString("MINIO_BUCKET"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		MinioPublicURL: viper.GetString("MINIO_PUBLIC_URL"),
		RabbitMQURL:    viper.GetString("RABBITMQ_URL"),
		MapboxToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
		SwaggerHost:    viper.GetString("SWAGGER_HOST"),
	}
}
