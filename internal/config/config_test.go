package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "ORIGIN", "APP_ENV", "JWT_SECRET", "JWT_EXPIRATION_MINUTES",
	"TIMEZONE", "STORE_DRIVER", "DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "3001" || cfg.StoreDriver != StoreMemory || cfg.JWTExpirationMinutes != 60 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}
	if cfg.Database.DSN != "root:@tcp(localhost:3306)/vytara?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Errorf("DSN = %s", cfg.Database.DSN)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("port: \"8080\"\ntimezone: Asia/Kolkata\njwt_expiration_minutes: 30\ndatabase:\n  host: db\n  name: health\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("env should override file, port = %s", cfg.Port)
	}
	if cfg.JWTExpirationMinutes != 30 || cfg.Database.Host != "db" || cfg.Database.Name != "health" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Errorf("location = %s", cfg.Location())
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"JWT_EXPIRATION_MINUTES": "soon",
		"TIMEZONE":               "Mars/Olympus",
		"STORE_DRIVER":           "redis",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("%s=%s accepted", key, value)
			}
		})
	}
}
