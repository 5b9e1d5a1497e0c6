package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig    `json:"database"`
	Cache       CacheConfig       `json:"cache"`
	Weather     WeatherConfig     `json:"weather"`
	Recommender RecommenderConfig `json:"recommender"`
	Feeds       FeedsConfig       `json:"feeds"`
	Server      ServerConfig      `json:"server"`
}

// DatabaseConfig represents PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// CacheConfig represents Redis configuration
type CacheConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	Database int    `json:"database"`

	// FreshnessTTLSeconds bounds how stale a cached freshness reading may
	// be before it is recomputed.
	FreshnessTTLSeconds int `json:"freshness_ttl_seconds"`
}

// FallbackPolicy selects what happens when the weather provider fails.
type FallbackPolicy string

const (
	// FallbackDefaultTemp substitutes DefaultTempC for the live reading.
	FallbackDefaultTemp FallbackPolicy = "default"
	// FallbackFail surfaces the failure to the caller.
	FallbackFail FallbackPolicy = "fail"
)

// WeatherConfig represents the external temperature provider configuration
type WeatherConfig struct {
	BaseURL        string         `json:"base_url"`
	APIKey         string         `json:"api_key"`
	TimeoutSeconds int            `json:"timeout_seconds"`
	Policy         FallbackPolicy `json:"fallback_policy"`
	DefaultTempC   float64        `json:"default_temp_c"`
}

// RecommenderConfig tunes the market ranking projections
type RecommenderConfig struct {
	TruckSpeedKmh      float64 `json:"truck_speed_kmh"`
	DecayPerTravelHour float64 `json:"decay_per_travel_hour"`
}

// FeedsConfig represents location feed configuration
type FeedsConfig struct {
	Gateway1 FeedEndpointConfig `json:"gateway1"`
	Gateway2 FeedEndpointConfig `json:"gateway2"`
	Workers  int                `json:"workers"`
}

// FeedEndpointConfig represents one telemetry gateway endpoint
type FeedEndpointConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int `json:"port"`
}

// Load loads configuration from file
func Load() (*Config, error) {
	configFile := "configs/config.json"
	if envFile := os.Getenv("CONFIG_FILE"); envFile != "" {
		configFile = envFile
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Cache.FreshnessTTLSeconds <= 0 {
		c.Cache.FreshnessTTLSeconds = 30
	}
	if c.Weather.TimeoutSeconds <= 0 {
		c.Weather.TimeoutSeconds = 5
	}
	if c.Weather.Policy == "" {
		c.Weather.Policy = FallbackFail
	}
	if c.Weather.Policy == FallbackDefaultTemp && c.Weather.DefaultTempC == 0 {
		c.Weather.DefaultTempC = 28
	}
	if c.Recommender.TruckSpeedKmh <= 0 {
		c.Recommender.TruckSpeedKmh = 40
	}
	if c.Recommender.DecayPerTravelHour == 0 {
		c.Recommender.DecayPerTravelHour = 1
	}
	if c.Feeds.Workers <= 0 {
		c.Feeds.Workers = 4
	}
}

func (c *Config) validate() error {
	switch c.Weather.Policy {
	case FallbackDefaultTemp, FallbackFail:
	default:
		return fmt.Errorf("unknown weather fallback policy %q", c.Weather.Policy)
	}
	return nil
}
