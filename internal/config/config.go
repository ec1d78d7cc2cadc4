package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPPort       string
	JWTSecret      string
	JWTExpiration  time.Duration
	AllowedOrigins []string

	// CatalogFile replaces the compiled-in exam catalog when set
	CatalogFile     string
	RankingSize     int
	AvailabilityTTL time.Duration
}

// Load reads configuration from the environment, after applying a .env file
// if one is present
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg := &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "desafiabrasil"),
		RedisAddr:       strings.TrimPrefix(getEnv("REDIS_ADDR", "localhost:6379"), "redis://"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		HTTPPort:        getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiration:   time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CatalogFile:     getEnv("CATALOG_FILE", ""),
		RankingSize:     getEnvInt("RANKING_SIZE", 10),
		AvailabilityTTL: time.Duration(getEnvInt("AVAILABILITY_TTL_SECONDS", 60)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "super-secret-key-change-in-production"
		log.Println("Warning: JWT_SECRET not set, using default")
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
