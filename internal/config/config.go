// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/domain"
)

// Config holds the complete application configuration.
type Config struct {
	Input     InputConfig
	Planner   PlannerConfig
	Server    ServerConfig
	Storage   StorageConfig
	LogLevel  string
	LogPretty bool
}

// InputConfig points at the CSV input files and the output directory.
type InputConfig struct {
	ChildrenPath string
	ArticlesPath string
	SpecsPath    string
	OutputDir    string
}

// PlannerConfig holds route planner tuning.
type PlannerConfig struct {
	Depot             domain.Coordinates
	DeliveryWindow    time.Duration
	Workers           int
	Improve           bool
	SkipUndeliverable bool
	StrictWindow      bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
}

// StorageConfig holds the optional Postgres and Redis endpoints.
type StorageConfig struct {
	DatabaseURL      string
	RedisURL         string
	DistanceCacheTTL time.Duration
}

// LoadDotEnv reads a .env file when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Input: InputConfig{
			ChildrenPath: Get("CHILDREN_PATH", "sample_data/sample_input.csv"),
			ArticlesPath: Get("ARTICLES_PATH", "sample_data/articles.csv"),
			SpecsPath:    Get("SPECS_PATH", "sample_data/sleigh_specs.csv"),
			OutputDir:    Get("OUTPUT_DIR", "output"),
		},
		Planner: PlannerConfig{
			Depot: domain.Coordinates{
				Lat: getFloat("DEPOT_LAT", domain.NorthPole.Lat),
				Lon: getFloat("DEPOT_LON", domain.NorthPole.Lon),
			},
			DeliveryWindow:    getDuration("DELIVERY_WINDOW", domain.DefaultDeliveryWindow),
			Workers:           getInt("PLANNER_WORKERS", 4),
			Improve:           getBool("PLANNER_IMPROVE", false),
			SkipUndeliverable: getBool("SKIP_UNDELIVERABLE", false),
			StrictWindow:      getBool("STRICT_WINDOW", false),
		},
		Server: ServerConfig{
			Port: Get("PORT", "8080"),
		},
		Storage: StorageConfig{
			DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
			RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
			DistanceCacheTTL: getDuration("DISTANCE_CACHE_TTL", 24*time.Hour),
		},
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", false),
	}
}

// Get returns the environment value for key or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid integer")
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid number")
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid boolean")
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid duration")
	}
	return fallback
}
