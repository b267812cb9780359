package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Redis   RedisConfig
	JWT     JWTConfig
	API     APIConfig
	Session SessionConfig
	Storage StorageConfig
	Lookup  LookupConfig
	Console ConsoleConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	Mode               string // gin mode: debug, release, test
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds console token signing settings.
type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// APIConfig describes the REST backend every entity call goes to.
type APIConfig struct {
	BaseURL    string
	TimeoutSec int // 0 disables the client timeout
	Proxy      string
}

// SessionConfig controls persisted session blobs.
type SessionConfig struct {
	StorageKey string
	TTLHours   int
}

// StorageConfig holds object storage settings for signed-credential uploads.
type StorageConfig struct {
	EndpointTemplate string // %s is replaced by the bucket region
	PartSizeMB       int
	MaxUploadMB      int
}

// LookupConfig tunes selector widgets.
type LookupConfig struct {
	PageSize   int
	DebounceMS int
}

// ConsoleConfig holds presentation defaults.
type ConsoleConfig struct {
	Timezone string
}

// Timeout returns the backend request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// TTL returns how long a persisted session survives without activity.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Debounce returns the lookup debounce window.
func (c LookupConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Location resolves the console timezone, falling back to UTC.
func (c ConsoleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			Mode:               getEnv("GIN_MODE", "release"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8787"), "/"),
			TimeoutSec: getEnvInt("API_TIMEOUT_SEC", 30),
			Proxy:      getEnv("API_PROXY", ""),
		},
		Session: SessionConfig{
			StorageKey: getEnv("SESSION_STORAGE_KEY", "fcc-auth"),
			TTLHours:   getEnvInt("SESSION_TTL_HOURS", 24*7),
		},
		Storage: StorageConfig{
			EndpointTemplate: getEnv("STORAGE_ENDPOINT", "https://cos.%s.myqcloud.com"),
			PartSizeMB:       getEnvInt("STORAGE_PART_SIZE_MB", 50),
			MaxUploadMB:      getEnvInt("UPLOAD_MAX_MB", 20),
		},
		Lookup: LookupConfig{
			PageSize:   getEnvInt("LOOKUP_PAGE_SIZE", 50),
			DebounceMS: getEnvInt("LOOKUP_DEBOUNCE_MS", 300),
		},
		Console: ConsoleConfig{
			Timezone: getEnv("CONSOLE_TIMEZONE", "Asia/Shanghai"),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
