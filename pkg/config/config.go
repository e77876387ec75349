package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// StoreConfig holds persistence configuration. Driver selects the backend:
// "file" keeps one JSON array file per collection under DataDir, "sqlite"
// keeps everything in a single embedded database at SQLitePath.
type StoreConfig struct {
	Driver         string
	DataDir        string
	SQLitePath     string
	ValidationMode string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	Server  ServerConfig
	JWT     JWTConfig
	Store   StoreConfig
	Log     LogConfig
	Metrics MetricsConfig
}

const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"

	// ValidationLoose persists any caller-supplied field verbatim.
	// ValidationStrict drops fields outside the collection schema and
	// protects id/createdAt from overwrites.
	ValidationLoose  = "loose"
	ValidationStrict = "strict"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "pharmaservicesecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Store: StoreConfig{
			Driver:         getEnv("STORE_DRIVER", StoreDriverFile),
			DataDir:        getEnv("DATA_DIR", "data"),
			SQLitePath:     getEnv("SQLITE_PATH", filepath.Join("data", "pharma.db")),
			ValidationMode: getEnv("VALIDATION_MODE", ValidationLoose),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "pharma"),
		},
	}

	if config.Store.Driver != StoreDriverFile && config.Store.Driver != StoreDriverSQLite {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.Store.Driver)
	}
	if config.Store.ValidationMode != ValidationLoose && config.Store.ValidationMode != ValidationStrict {
		return nil, fmt.Errorf("unknown VALIDATION_MODE %q", config.Store.ValidationMode)
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("store_driver", c.Store.Driver),
		zap.String("data_dir", c.Store.DataDir),
		zap.String("validation_mode", c.Store.ValidationMode),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
