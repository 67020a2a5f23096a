package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql (needed by goose)
	"github.com/pressly/goose/v3"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore implements Store on PostgreSQL. Setting data is kept in a
// JSONB column.
type PostgresStore struct {
	pool   *pgxpool.Pool
	dsn    string
	logger *slog.Logger
}

// NewPostgresStore creates a connection pool for dsn and verifies it with a ping.
func NewPostgresStore(ctx context.Context, dsn string, maxConns int32, logger *slog.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		dsn:    dsn,
		logger: logger.With("component", "store", "driver", "postgres"),
	}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Migrate applies all pending goose migrations from the embedded SQL files.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	goose.SetBaseFS(migrations)

	db, err := goose.OpenDBWithDriver("pgx", s.dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

const settingColumns = `id::text, data::text, created_at, updated_at`

func (s *PostgresStore) ListSettings(ctx context.Context, opts model.ListOptions) ([]*model.Setting, int, error) {
	opts.Clamp()
	s.logger.Debug("sql", "op", "list", "table", "settings", "page", opts.Page, "limit", opts.Limit)

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM settings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settings: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+settingColumns+` FROM settings
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := []*model.Setting{}
	for rows.Next() {
		st, err := scanPgSetting(rows)
		if err != nil {
			return nil, 0, err
		}
		settings = append(settings, st)
	}
	return settings, total, rows.Err()
}

func (s *PostgresStore) GetSetting(ctx context.Context, id string) (*model.Setting, error) {
	s.logger.Debug("sql", "op", "select", "table", "settings", "id", id)
	if !validUUID(id) {
		return nil, nil
	}

	st, err := scanPgSetting(s.pool.QueryRow(ctx,
		`SELECT `+settingColumns+` FROM settings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", id, err)
	}
	return st, nil
}

func (s *PostgresStore) CreateSetting(ctx context.Context, data jsonvalue.Value) (*model.Setting, error) {
	id := newID()
	s.logger.Debug("sql", "op", "insert", "table", "settings", "id", id)

	st, err := scanPgSetting(s.pool.QueryRow(ctx,
		`INSERT INTO settings (id, data) VALUES ($1, $2::jsonb)
		 RETURNING `+settingColumns,
		id, data.String()))
	if err != nil {
		return nil, fmt.Errorf("insert setting: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) UpdateSetting(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error) {
	s.logger.Debug("sql", "op", "update", "table", "settings", "id", id)
	if !validUUID(id) {
		return nil, nil
	}

	st, err := scanPgSetting(s.pool.QueryRow(ctx,
		`UPDATE settings
		 SET data = $2::jsonb,
		     updated_at = GREATEST(now(), updated_at + interval '1 microsecond')
		 WHERE id = $1
		 RETURNING `+settingColumns,
		id, data.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update setting %s: %w", id, err)
	}
	return st, nil
}

func (s *PostgresStore) DeleteSetting(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "settings", "id", id)
	if !validUUID(id) {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM settings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete setting %s: %w", id, err)
	}
	return nil
}

func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanPgSetting(row pgx.Row) (*model.Setting, error) {
	var st model.Setting
	var data string
	if err := row.Scan(&st.ID, &data, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}

	v, err := jsonvalue.Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode data of setting %s: %w", st.ID, err)
	}
	st.Data = v
	st.CreatedAt = st.CreatedAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}
