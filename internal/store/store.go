// Package store persists settings records.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// Store defines the persistence layer for settings.
//
// Absent records are reported as (nil, nil). DeleteSetting is idempotent.
type Store interface {
	ListSettings(ctx context.Context, opts model.ListOptions) ([]*model.Setting, int, error)
	GetSetting(ctx context.Context, id string) (*model.Setting, error)
	CreateSetting(ctx context.Context, data jsonvalue.Value) (*model.Setting, error)
	UpdateSetting(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error)
	DeleteSetting(ctx context.Context, id string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}

// newID returns a fresh setting identifier (UUID v4).
func newID() string {
	return uuid.NewString()
}

// stamp normalizes t to the precision every backend can store.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nextUpdate returns the updated_at value for a record last touched at prev.
// The result is always strictly after prev.
func nextUpdate(prev, now time.Time) time.Time {
	now = stamp(now)
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}
