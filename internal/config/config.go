package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fleet sources.
const (
	FleetFile     = "file"
	FleetSqlite   = "sqlite"
	FleetPostgres = "postgres"
)

// Routing providers.
const (
	RoutingORS    = "ors"
	RoutingGoogle = "google"
	RoutingNone   = "none"
)

// Persistent distance stores.
const (
	StoreNone     = "none"
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string

	DriversPath string
	RidesPath   string
	FleetSource string

	RoutingProvider  string
	ORSAPIKey        string
	GoogleMapsAPIKey string
	RoutingThreshold float64
	RoutingTimeout   time.Duration
	AverageSpeedKmh  float64
	HourlyRate       float64
	EngineWorkers    int
	DistanceStore    string
	RedisAddr        string
	DistanceStoreTTL time.Duration
	GeocodeCountry   string
	LogVerbose       bool
	MigrationsPath   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DRIVERS_PATH", "data/seeds/drivers.json")
	v.SetDefault("RIDES_PATH", "data/seeds/rides.json")
	v.SetDefault("FLEET_SOURCE", FleetFile)
	v.SetDefault("ROUTING_PROVIDER", RoutingNone)
	v.SetDefault("ORS_API_KEY", "")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("ROUTING_THRESHOLD_KM", 30.0)
	v.SetDefault("ROUTING_TIMEOUT", 5*time.Second)
	v.SetDefault("AVERAGE_SPEED_KMH", 60.0)
	v.SetDefault("HOURLY_RATE", 30.0)
	v.SetDefault("ENGINE_WORKERS", 8)
	v.SetDefault("DISTANCE_STORE", StoreNone)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("DISTANCE_STORE_TTL", 0)
	v.SetDefault("GEOCODE_COUNTRY", "")
	v.SetDefault("LOG_VERBOSE", false)
	v.SetDefault("MIGRATIONS_PATH", "db/migrations")
}

// Load reads configuration from the environment, falling back to an optional
// config.yaml in the working directory and then to defaults. A .env file, if
// any, must be loaded by the caller before Load.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("load config: read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetString("PORT"),
		DBPath:           v.GetString("DB_PATH"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DriversPath:      v.GetString("DRIVERS_PATH"),
		RidesPath:        v.GetString("RIDES_PATH"),
		FleetSource:      strings.ToLower(strings.TrimSpace(v.GetString("FLEET_SOURCE"))),
		RoutingProvider:  strings.ToLower(strings.TrimSpace(v.GetString("ROUTING_PROVIDER"))),
		ORSAPIKey:        strings.TrimSpace(v.GetString("ORS_API_KEY")),
		GoogleMapsAPIKey: strings.TrimSpace(v.GetString("GOOGLE_MAPS_API_KEY")),
		RoutingThreshold: v.GetFloat64("ROUTING_THRESHOLD_KM"),
		RoutingTimeout:   v.GetDuration("ROUTING_TIMEOUT"),
		AverageSpeedKmh:  v.GetFloat64("AVERAGE_SPEED_KMH"),
		HourlyRate:       v.GetFloat64("HOURLY_RATE"),
		EngineWorkers:    v.GetInt("ENGINE_WORKERS"),
		DistanceStore:    strings.ToLower(strings.TrimSpace(v.GetString("DISTANCE_STORE"))),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		DistanceStoreTTL: v.GetDuration("DISTANCE_STORE_TTL"),
		GeocodeCountry:   v.GetString("GEOCODE_COUNTRY"),
		LogVerbose:       v.GetBool("LOG_VERBOSE"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	switch c.FleetSource {
	case FleetFile:
		if c.DriversPath == "" || c.RidesPath == "" {
			problems = append(problems, "DRIVERS_PATH and RIDES_PATH are required for FLEET_SOURCE=file")
		}
	case FleetSqlite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH is required for FLEET_SOURCE=sqlite")
		}
	case FleetPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for FLEET_SOURCE=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("FLEET_SOURCE must be file, sqlite or postgres, got %q", c.FleetSource))
	}

	switch c.RoutingProvider {
	case RoutingNone:
	case RoutingORS:
		if c.ORSAPIKey == "" {
			problems = append(problems, "ORS_API_KEY is required for ROUTING_PROVIDER=ors")
		}
	case RoutingGoogle:
		if c.GoogleMapsAPIKey == "" {
			problems = append(problems, "GOOGLE_MAPS_API_KEY is required for ROUTING_PROVIDER=google")
		}
	default:
		problems = append(problems, fmt.Sprintf("ROUTING_PROVIDER must be ors, google or none, got %q", c.RoutingProvider))
	}

	switch c.DistanceStore {
	case StoreNone:
	case StoreSqlite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH is required for DISTANCE_STORE=sqlite")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for DISTANCE_STORE=postgres")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required for DISTANCE_STORE=redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("DISTANCE_STORE must be none, sqlite, postgres or redis, got %q", c.DistanceStore))
	}

	if c.RoutingThreshold < 0 {
		problems = append(problems, "ROUTING_THRESHOLD_KM must not be negative")
	}
	if c.RoutingTimeout <= 0 {
		problems = append(problems, "ROUTING_TIMEOUT must be positive")
	}
	if c.AverageSpeedKmh <= 0 {
		problems = append(problems, "AVERAGE_SPEED_KMH must be positive")
	}
	if c.HourlyRate < 0 {
		problems = append(problems, "HOURLY_RATE must not be negative")
	}
	if c.EngineWorkers <= 0 {
		problems = append(problems, "ENGINE_WORKERS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
