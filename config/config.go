package config

import (
	stderrors "errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	UserCacheTTL  time.Duration

	RabbitMQURL      string
	LocationExchange string

	NearbyRadiusKm float64
	AllowedOrigins []string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "maharashtra_tour_guide"),
		MongoTimeout:     time.Duration(getEnvAsInt("MONGODB_TIMEOUT_SECONDS", 5)) * time.Second,
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiry:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		UserCacheTTL:     time.Duration(getEnvAsInt("USER_CACHE_TTL_HOURS", 24)) * time.Hour,
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		LocationExchange: getEnv("LOCATION_EXCHANGE", "guide_locations"),
		NearbyRadiusKm:   getEnvAsFloat("NEARBY_RADIUS_KM", 50),
		AllowedOrigins:   getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.JWTSecret == "" {
		return nil, stderrors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.NearbyRadiusKm <= 0 {
		return nil, stderrors.New("NEARBY_RADIUS_KM must be positive")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
