package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"

	_ "modernc.org/sqlite"
)

// timeLayout is RFC 3339 with a fixed microsecond fraction, so that
// stored timestamps sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Every connection to ":memory:" gets its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store", "driver", "sqlite"),
		now:    time.Now,
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) ListSettings(ctx context.Context, opts model.ListOptions) ([]*model.Setting, int, error) {
	opts.Clamp()
	s.logger.Debug("sql", "op", "list", "table", "settings", "page", opts.Page, "limit", opts.Limit)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, created_at, updated_at FROM settings
		 ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := []*model.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, 0, err
		}
		settings = append(settings, st)
	}
	return settings, total, rows.Err()
}

func (s *SQLiteStore) GetSetting(ctx context.Context, id string) (*model.Setting, error) {
	s.logger.Debug("sql", "op", "select", "table", "settings", "id", id)

	st, err := scanSetting(s.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM settings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) CreateSetting(ctx context.Context, data jsonvalue.Value) (*model.Setting, error) {
	now := stamp(s.now())
	st := &model.Setting{
		ID:        newID(),
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.logger.Debug("sql", "op", "insert", "table", "settings", "id", st.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		st.ID, data.String(), now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert setting: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) UpdateSetting(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error) {
	s.logger.Debug("sql", "op", "update", "table", "settings", "id", id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	st, err := scanSetting(tx.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM settings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	st.Data = data
	st.UpdatedAt = nextUpdate(st.UpdatedAt, s.now())

	if _, err := tx.ExecContext(ctx,
		`UPDATE settings SET data = ?, updated_at = ? WHERE id = ?`,
		data.String(), st.UpdatedAt.Format(timeLayout), id); err != nil {
		return nil, fmt.Errorf("update setting: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) DeleteSetting(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "settings", "id", id)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSetting(row scanner) (*model.Setting, error) {
	var st model.Setting
	var data, createdAt, updatedAt string
	if err := row.Scan(&st.ID, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	v, err := jsonvalue.Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode data of setting %s: %w", st.ID, err)
	}
	st.Data = v
	if st.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of setting %s: %w", st.ID, err)
	}
	if st.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at of setting %s: %w", st.ID, err)
	}
	return &st, nil
}
