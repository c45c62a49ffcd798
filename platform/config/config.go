// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminUsername() string
	GetAdminPassword() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GeocoderConfig provides settings for the reverse-geocoding client.
type GeocoderConfig interface {
	GetNominatimBaseURL() string
	GetGeocoderLanguage() string
	GetGeocoderUserAgent() string
	GetGeocoderTimeout() time.Duration
}

// MapConfig provides default viewport settings for the map scene.
type MapConfig interface {
	GetMapDefaultLat() float64
	GetMapDefaultLng() float64
	GetMapDefaultZoom() int
	GetMapFitPadding() int
	GetTileURLTemplate() string
	GetTileAttribution() string
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ShareConfig provides settings for public listing links (QR codes).
type ShareConfig interface {
	GetAppBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	DatabaseURL       string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AdminUsername     string
	AdminPassword     string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	AppBaseURL        string
	NominatimBaseURL  string
	GeocoderLanguage  string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	MapDefaultLat     float64
	MapDefaultLng     float64
	MapDefaultZoom    int
	MapFitPadding     int
	TileURLTemplate   string
	TileAttribution   string
	RedisURL          string
	RedisTLSInsecure  bool
	AsynqQueueName    string
	AsynqConcurrency  int
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTSecret() string { return c.JWTSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetAdminUsername() string         { return c.AdminUsername }
func (c *Config) GetAdminPassword() string         { return c.AdminPassword }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GeocoderConfig implementation
func (c *Config) GetNominatimBaseURL() string       { return c.NominatimBaseURL }
func (c *Config) GetGeocoderLanguage() string       { return c.GeocoderLanguage }
func (c *Config) GetGeocoderUserAgent() string      { return c.GeocoderUserAgent }
func (c *Config) GetGeocoderTimeout() time.Duration { return c.GeocoderTimeout }

// MapConfig implementation
func (c *Config) GetMapDefaultLat() float64  { return c.MapDefaultLat }
func (c *Config) GetMapDefaultLng() float64  { return c.MapDefaultLng }
func (c *Config) GetMapDefaultZoom() int     { return c.MapDefaultZoom }
func (c *Config) GetMapFitPadding() int      { return c.MapFitPadding }
func (c *Config) GetTileURLTemplate() string { return c.TileURLTemplate }
func (c *Config) GetTileAttribution() string { return c.TileAttribution }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// ShareConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTokenTTL:    mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:8080"),
		NominatimBaseURL:  getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderLanguage:  getEnv("GEOCODER_LANGUAGE", "bg"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "VillageRides/1.0"),
		GeocoderTimeout:   mustDuration(getEnv("GEOCODER_TIMEOUT", "5s")),
		MapDefaultLat:     mustFloat(getEnv("MAP_DEFAULT_LAT", "42.8038")),
		MapDefaultLng:     mustFloat(getEnv("MAP_DEFAULT_LNG", "23.8097")),
		MapDefaultZoom:    mustInt(getEnv("MAP_DEFAULT_ZOOM", "13")),
		MapFitPadding:     mustInt(getEnv("MAP_FIT_PADDING", "40")),
		TileURLTemplate:   getEnv("TILE_URL_TEMPLATE", "https://tile.openstreetmap.org/{z}/{x}/{y}.png"),
		TileAttribution:   getEnv("TILE_ATTRIBUTION", "&copy; OpenStreetMap contributors"),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisTLSInsecure:  strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:  mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
