package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Cfg is the global configuration instance, populated by LoadConfig.
var Cfg *Config

// Config holds every runtime setting of the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Mode           string // gin mode: debug, release or test
	Address        string // listen address, e.g. ":8080"
	AllowedOrigins []string
}

// DatabaseConfig selects the relational driver and the Redis session store.
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string // sqlite file path or postgres DSN
	Redis  RedisConfig
}

// RedisConfig configures the session store. An empty Address disables Redis
// and the server falls back to stateless JWT sessions.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// AuthConfig holds the JWT secret and the bootstrap admin account that is
// created on first startup if no admin exists.
type AuthConfig struct {
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

// LoadConfig reads .env (if present) and the process environment and fills
// the global Cfg. Missing optional values fall back to development defaults.
// JWT_SECRET has no default: sessions must not be signed with a guessable key.
func LoadConfig() (*Config, error) {
	// .env is optional; env vars set by the deployment win either way.
	_ = godotenv.Load(".env")

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		redisDB = n
	}

	cfg := &Config{
		Server: ServerConfig{
			Mode:           getenv("GIN_MODE", "debug"),
			Address:        getenv("SERVER_ADDRESS", ":8080"),
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			Driver: getenv("DB_DRIVER", "sqlite"),
			DSN:    getenv("DB_DSN", "elections.db"),
			Redis: RedisConfig{
				Address:  os.Getenv("REDIS_ADDRESS"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       redisDB,
			},
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			AdminUsername: getenv("ADMIN_USERNAME", "admin"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	Cfg = cfg
	return Cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
