package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the prediction backend
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	// ML service
	MLServiceURL      string
	MLFallbackEnabled bool
	MLTimeout         time.Duration
	MLBreakerEnabled  bool
	MLRateLimit       float64 // requests per second, 0 disables limiting
	MLRateBurst       int

	// HealthInterval controls how often the ML service is probed
	HealthInterval time.Duration

	// HistoryMax caps the in-memory prediction log (0 = unlimited)
	HistoryMax int
}

// Load reads an optional .env file and then the environment, applying defaults
func Load() (*Config, error) {
	// A missing .env file is expected outside of development
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		MLServiceURL: getEnv("ML_SERVICE_URL", "http://localhost:8000"),
	}

	var err error
	if cfg.MLFallbackEnabled, err = getEnvBool("ML_FALLBACK_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.MLBreakerEnabled, err = getEnvBool("ML_BREAKER_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.MLTimeout, err = getEnvDuration("ML_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthInterval, err = getEnvDuration("HEALTH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.MLRateLimit, err = getEnvFloat("ML_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.MLRateBurst, err = getEnvInt("ML_RATE_BURST", 1); err != nil {
		return nil, err
	}
	if cfg.HistoryMax, err = getEnvInt("HISTORY_MAX", 500); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges that cannot be expressed by the parsers
func (c *Config) Validate() error {
	if c.MLServiceURL == "" {
		return fmt.Errorf("config: ML_SERVICE_URL must not be empty")
	}
	if c.MLTimeout <= 0 {
		return fmt.Errorf("config: invalid ML_TIMEOUT: %s", c.MLTimeout)
	}
	if c.HealthInterval < time.Second {
		return fmt.Errorf("config: HEALTH_INTERVAL must be at least 1s, got %s", c.HealthInterval)
	}
	if c.MLRateLimit < 0 {
		return fmt.Errorf("config: invalid ML_RATE_LIMIT: %g", c.MLRateLimit)
	}
	if c.MLRateLimit > 0 && c.MLRateBurst < 1 {
		return fmt.Errorf("config: ML_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	if c.HistoryMax < 0 {
		return fmt.Errorf("config: invalid HISTORY_MAX: %d", c.HistoryMax)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}
