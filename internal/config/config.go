package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DataDir       string
	JWTSecret     string
	TokenExpiry   time.Duration
	OnCorrupt     string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	SwaggerEnable bool
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DataDir:       getEnv("DATA_DIR", "db"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		TokenExpiry:   getEnvDuration("TOKEN_EXPIRY", 24*time.Hour),
		OnCorrupt:     getEnv("ON_CORRUPT", "reset"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Minute),
		SwaggerEnable: getEnv("SWAGGER_ENABLE", "true") == "true",
	}
}

// UsersFile returns the path of the user store document.
func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// TasksFile returns the path of the task store document.
func (c *Config) TasksFile() string {
	return filepath.Join(c.DataDir, "tasks.json")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
