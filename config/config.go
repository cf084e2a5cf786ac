package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// API client selection: "fixture" serves the in-memory reference data,
	// "remote" talks to the external test endpoints.
	APIMode          string `mapstructure:"API_MODE"`
	APIBaseURL       string `mapstructure:"API_BASE_URL"`
	APITimeoutSecs   int    `mapstructure:"API_TIMEOUT_SECS"`
	FixtureEmail     string `mapstructure:"FIXTURE_EMAIL"`
	FixturePassword  string `mapstructure:"FIXTURE_PASSWORD"`
	FixtureUserName  string `mapstructure:"FIXTURE_USER_NAME"`
	FixtureLatencyMS int    `mapstructure:"FIXTURE_LATENCY_MS"`

	// Session store backend: "memory" or "redis".
	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// APITimeout returns the remote client request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSecs) * time.Second
}

// FixtureLatency returns the simulated network delay for the fixture client.
func (c *Config) FixtureLatency() time.Duration {
	return time.Duration(c.FixtureLatencyMS) * time.Millisecond
}

// IsProduction checks if the environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig initializes Viper to load config values from env, file, or
// defaults, and returns the resulting configuration.
func LoadConfig() *Config {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("API_MODE", "fixture")
	viper.SetDefault("API_BASE_URL", "")
	viper.SetDefault("API_TIMEOUT_SECS", 5)
	viper.SetDefault("FIXTURE_EMAIL", "test@example.com")
	viper.SetDefault("FIXTURE_PASSWORD", "abcdefg")
	viper.SetDefault("FIXTURE_USER_NAME", "Test User")
	viper.SetDefault("FIXTURE_LATENCY_MS", 800)
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return &cfg
}
