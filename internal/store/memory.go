package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// MemoryStore implements Store in process memory. It backs the test API
// server and the "memory" driver; nothing is persisted.
type MemoryStore struct {
	mu       sync.Mutex
	settings map[string]model.Setting
	now      func() time.Time
	logger   *slog.Logger
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock sets the time source used for created_at and updated_at.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithMemoryLogger sets the store logger.
func WithMemoryLogger(logger *slog.Logger) MemoryOption {
	return func(s *MemoryStore) {
		s.logger = logger.With("component", "store", "driver", "memory")
	}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		settings: make(map[string]model.Setting),
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset replaces the whole record set with seed.
func (s *MemoryStore) Reset(seed []model.Setting) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("sql", "op", "reset", "count", len(seed))
	s.settings = make(map[string]model.Setting, len(seed))
	for _, st := range seed {
		s.settings[st.ID] = st
	}
}

// Len returns the number of stored settings.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.settings)
}

func (s *MemoryStore) Close() error                     { return nil }
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (s *MemoryStore) ListSettings(ctx context.Context, opts model.ListOptions) ([]*model.Setting, int, error) {
	opts.Clamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("sql", "op", "list", "page", opts.Page, "limit", opts.Limit)

	all := make([]model.Setting, 0, len(s.settings))
	for _, st := range s.settings {
		all = append(all, st)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	page := []*model.Setting{}
	for i := opts.Offset(); i < len(all) && len(page) < opts.Limit; i++ {
		st := all[i]
		page = append(page, &st)
	}
	return page, len(all), nil
}

func (s *MemoryStore) GetSetting(ctx context.Context, id string) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("sql", "op", "select", "id", id)

	st, ok := s.settings[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *MemoryStore) CreateSetting(ctx context.Context, data jsonvalue.Value) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := stamp(s.now())
	st := model.Setting{ID: newID(), Data: data, CreatedAt: now, UpdatedAt: now}
	s.logger.Debug("sql", "op", "insert", "id", st.ID)
	s.settings[st.ID] = st
	return &st, nil
}

func (s *MemoryStore) UpdateSetting(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("sql", "op", "update", "id", id)

	st, ok := s.settings[id]
	if !ok {
		return nil, nil
	}
	st.Data = data
	st.UpdatedAt = nextUpdate(st.UpdatedAt, s.now())
	s.settings[id] = st
	return &st, nil
}

func (s *MemoryStore) DeleteSetting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("sql", "op", "delete", "id", id)

	delete(s.settings, id)
	return nil
}
