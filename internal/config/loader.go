package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/me/jsonsettings/internal/logging"
)

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error. An empty
// path means DefaultConfigFile.
func Load(yamlPath string) (*Config, error) {
	if yamlPath == "" {
		yamlPath = DefaultConfigFile
	}
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	LoadDotEnv()
	loadEnv(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads .env files with priority: .env.local > .env
// godotenv.Load does NOT overwrite already-set env vars,
// so OS env vars always win, .env.local wins over .env.
// Returns list of files actually loaded.
func LoadDotEnv() []string {
	candidates := []string{".env.local", ".env"}
	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// APIURL returns the settings API base URL from SETTINGS_API_URL,
// falling back to DefaultAPIURL.
func APIURL() string {
	if v := os.Getenv("SETTINGS_API_URL"); v != "" {
		return v
	}
	return DefaultAPIURL
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "SETTINGS_ADDR")
	setList(&cfg.Server.CORSOrigins, "SETTINGS_CORS_ORIGINS")

	setString(&cfg.Database.Driver, "SETTINGS_DB_DRIVER")
	setString(&cfg.Database.Path, "SETTINGS_DB_PATH")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setInt32(&cfg.Database.MaxConns, "SETTINGS_DB_MAX_CONNS")

	setString(&cfg.Admin.Addr, "SETTINGS_ADMIN_ADDR")
	setString(&cfg.Admin.APIURL, "SETTINGS_API_URL")
	setInt(&cfg.Admin.PageSize, "SETTINGS_PAGE_SIZE")
	setString(&cfg.Admin.TimeLayout, "SETTINGS_TIME_LAYOUT")
	setDuration(&cfg.Admin.Timeout, "SETTINGS_API_TIMEOUT")

	setString(&cfg.Logging.Level, "SETTINGS_LOG_LEVEL")
	setString(&cfg.Logging.Format, "SETTINGS_LOG_FORMAT")
}

// Validate checks that the configuration is usable.
func Validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite", "memory":
	case "postgres":
		if cfg.Database.URL == "" {
			return errors.New("database.url is required for the postgres driver")
		}
		if cfg.Database.MaxConns < 1 {
			return errors.New("database.max_conns must be >= 1")
		}
	default:
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres, memory", cfg.Database.Driver)
	}
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if cfg.Admin.PageSize < 1 || cfg.Admin.PageSize > 100 {
		return errors.New("admin.page_size must be between 1 and 100")
	}
	if cfg.Admin.APIURL == "" {
		return errors.New("admin.api_url is required")
	}
	if !logging.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if !logging.ValidFormat(cfg.Logging.Format) {
		return fmt.Errorf("logging.format %q is not one of text, json", cfg.Logging.Format)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		var out []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*dst = out
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
