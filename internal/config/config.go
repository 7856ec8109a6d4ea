package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the whole application configuration, populated once from
// environment variables at startup. Nothing else reads the environment.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Upload   UploadConfig
	Assets   AssetsConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// StorageConfig selects the document-store backend.
// Driver: "postgres" (document collections over JSONB) or "jsonfile"
// (flat JSON array files under DataDir).
type StorageConfig struct {
	Driver  string
	DataDir string
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	MaxConns       int
	MinConns       int
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// AdminConfig is the single-admin credential material. The session guard
// receives it through its constructor, never from globals.
type AdminConfig struct {
	Email     string
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

// UploadConfig bounds incoming multipart uploads.
type UploadConfig struct {
	MaxFileSize  int64 // bytes per file
	MaxFileCount int   // files per request
}

// AssetsConfig selects the asset-publisher backend.
// Driver: "local" (static /uploads directory) or "object" (S3-compatible
// object store).
type AssetsConfig struct {
	Driver        string
	LocalDir      string
	PublicBaseURL string // prefix for local asset URLs, e.g. "" or "https://api.example.com"
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Jewelry Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "jsonfile"),
			DataDir: getEnv("STORAGE_DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "jewelry"),
			MaxConns:       getEnvInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvInt("DB_MIN_CONNS", 5),
			MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:     getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			Email:     getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 24*time.Hour),
		},
		Upload: UploadConfig{
			MaxFileSize:  int64(getEnvInt("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)),
			MaxFileCount: getEnvInt("UPLOAD_MAX_FILE_COUNT", 5),
		},
		Assets: AssetsConfig{
			Driver:        getEnv("ASSET_DRIVER", "local"),
			LocalDir:      getEnv("ASSET_LOCAL_DIR", "uploads"),
			PublicBaseURL: getEnv("ASSET_PUBLIC_BASE_URL", ""),
			Endpoint:      getEnv("ASSET_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("ASSET_ACCESS_KEY", ""),
			SecretKey:     getEnv("ASSET_SECRET_KEY", ""),
			Bucket:        getEnv("ASSET_BUCKET", "jewelry"),
			UseSSL:        getEnv("ASSET_USE_SSL", "false") == "true",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	// An unset ADMIN_PASSWORD would otherwise hash to the empty string
	// and accept a blank login. Production refuses to start instead.
	if cfg.App.Environment != "production" && cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin"
		log.Warn().Msg("ADMIN_PASSWORD not set, using development default \"admin\"")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the combinations that would only fail much later at
// request time.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "jsonfile":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or jsonfile)", c.Storage.Driver)
	}

	switch c.Assets.Driver {
	case "local", "object":
	default:
		return fmt.Errorf("unknown ASSET_DRIVER %q (want local or object)", c.Assets.Driver)
	}

	if c.Assets.Driver == "object" && (c.Assets.AccessKey == "" || c.Assets.SecretKey == "") {
		return fmt.Errorf("ASSET_ACCESS_KEY and ASSET_SECRET_KEY must be set for the object asset driver")
	}

	if c.App.Environment == "production" {
		if c.Admin.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.Password == "" {
			return fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
		if c.Storage.Driver == "postgres" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
