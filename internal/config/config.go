package config

import "time"

// DefaultAPIURL is the settings API base URL used when nothing else is configured.
const DefaultAPIURL = "http://localhost:8000/api"

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "settings.yaml"

// Config is the full configuration shared by the server, admin UI and CLI.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds configuration for the settings API server.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`         // Listen address (default ":8000")
	CORSOrigins []string `yaml:"cors_origins"` // Allowed CORS origins (default "*")
}

// DatabaseConfig selects and configures the backing store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`    // sqlite, postgres or memory
	Path     string `yaml:"path"`      // SQLite database path (default ~/.jsonsettings/settings.db, ":memory:" for testing)
	URL      string `yaml:"url"`       // PostgreSQL DSN
	MaxConns int32  `yaml:"max_conns"` // PostgreSQL pool size
}

// AdminConfig holds configuration for the web admin UI and the CLI.
type AdminConfig struct {
	Addr       string        `yaml:"addr"`        // Admin UI listen address (default ":8080")
	APIURL     string        `yaml:"api_url"`     // Settings API base URL
	PageSize   int           `yaml:"page_size"`   // Settings per page
	TimeLayout string        `yaml:"time_layout"` // Go time layout for created/updated columns
	Timeout    time.Duration `yaml:"timeout"`     // API request timeout
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Defaults returns sensible defaults.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			MaxConns: 10,
		},
		Admin: AdminConfig{
			Addr:       ":8080",
			APIURL:     DefaultAPIURL,
			PageSize:   10,
			TimeLayout: "1/2/2006, 3:04:05 PM",
			Timeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
