package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	MongoURI string
	MongoDB  string

	// StorageDriver selects the image host: "minio" or "memory".
	StorageDriver  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MediaBaseURL   string

	JWTSecret    string
	JWTExpiresIn time.Duration

	RateLimitRPM int
	BodyLimitMB  int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	cfg := &Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           port,
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "land_market"),
		StorageDriver:  getEnv("STORAGE_DRIVER", "minio"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "land-images"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MediaBaseURL:   getEnv("MEDIA_BASE_URL", "http://localhost:"+port+"/api/v1/media"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 300),
		BodyLimitMB:    getEnvInt("BODY_LIMIT_MB", 110),
	}

	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "4h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = expiresIn

	if cfg.JWTSecret == "" {
		if cfg.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET must be set in prod")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	if cfg.StorageDriver != "minio" && cfg.StorageDriver != "memory" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
