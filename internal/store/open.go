package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/me/jsonsettings/internal/config"
)

// Open creates the Store selected by cfg.Driver and runs its migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "memory":
		st = NewMemoryStore(WithMemoryLogger(logger))
	case "postgres":
		st, err = NewPostgresStore(ctx, cfg.URL, cfg.MaxConns, logger)
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, err
			}
		}
		st, err = NewSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}

// DefaultSQLitePath returns ~/.jsonsettings/settings.db, creating the
// directory if needed.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".jsonsettings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, "settings.db"), nil
}
