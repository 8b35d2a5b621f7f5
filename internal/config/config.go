package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string         `yaml:"port"`
	Origin               string         `yaml:"origin"`
	Environment          string         `yaml:"environment"`
	JWTSecret            string         `yaml:"jwt_secret"`
	JWTExpirationMinutes int            `yaml:"jwt_expiration_minutes"`
	Timezone             string         `yaml:"timezone"`
	StoreDriver          string         `yaml:"store_driver"`
	Database             DatabaseConfig `yaml:"database"`

	location *time.Location
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	DSN      string `yaml:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:                 "3001",
		Origin:               "http://localhost:5173",
		Environment:          "development",
		JWTSecret:            "default_jwt_secret",
		JWTExpirationMinutes: 60,
		Timezone:             "Local",
		StoreDriver:          StoreMemory,
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "3306",
			Username: "root",
			Name:     "vytara",
		},
	}
}

// LoadConfig loads configuration from an optional YAML file named by
// CONFIG_FILE, then from environment variables.
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Origin = getEnv("ORIGIN", cfg.Origin)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.StoreDriver = getEnv("STORE_DRIVER", cfg.StoreDriver)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", strconv.Itoa(cfg.JWTExpirationMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}
	if jwtExpMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: must be positive, got %d", jwtExpMinutes)
	}
	cfg.JWTExpirationMinutes = jwtExpMinutes

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.Username = getEnv("DB_USERNAME", cfg.Database.Username)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)

	// Build DSN (Data Source Name) for MySQL connection
	cfg.Database.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	switch cfg.StoreDriver {
	case StoreMemory, StoreMySQL:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", cfg.StoreDriver, StoreMemory, StoreMySQL)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return &cfg, nil
}

// Location is the time zone used for "today" and date keys.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
