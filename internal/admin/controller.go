package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// ErrSuperseded is returned by Reload when a newer list request was issued
// before this one completed. Its response was discarded.
var ErrSuperseded = errors.New("list response superseded by a newer request")

// Controller owns the paging state and orchestrates reloads after
// mutations. It is safe for concurrent use.
//
// Every list request carries a sequence number; only the response to the
// most recently issued request is applied, so the displayed page always
// reflects the latest requested page regardless of completion order.
type Controller struct {
	api      API
	notifier Notifier
	logger   *slog.Logger
	pageSize int
	editor   *Editor

	mu          sync.Mutex
	currentPage int
	totalPages  int
	items       []model.Setting
	loading     bool
	seq         uint64
	editing     *model.Setting
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the number of settings requested per page.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With("component", "admin")
	}
}

// NewController returns a Controller on page 1 with nothing loaded yet.
func NewController(api API, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:         api,
		notifier:    notifier,
		logger:      logging.Discard(),
		pageSize:    model.DefaultPageSize,
		currentPage: 1,
		totalPages:  1,
		items:       []model.Setting{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.editor = NewEditor(c.Save, c.clearEditing)
	return c
}

// Editor returns the controller's dialog.
func (c *Controller) Editor() *Editor {
	return c.editor
}

// PageSize returns the number of settings requested per page.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// Reload fetches page and, if no newer request has been issued meanwhile,
// replaces the current items and page count. On failure the user is
// notified and the previous state is kept. A page below 1 loads page 1.
func (c *Controller) Reload(ctx context.Context, page int) (*model.ListResponse, error) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.mu.Unlock()

	resp, err := c.api.List(ctx, page, c.pageSize)

	c.mu.Lock()
	latest := seq == c.seq
	if latest {
		c.loading = false
		if err == nil {
			c.currentPage = page
			c.items = append([]model.Setting(nil), resp.Data...)
			c.totalPages = resp.Pagination.TotalPages
		}
	}
	c.mu.Unlock()

	if err != nil {
		if !latest {
			c.logger.Warn("stale list request failed", "page", page, "seq", seq, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrSuperseded, err)
		}
		c.logger.Error("load settings", "page", page, "error", err)
		c.notifier.Notify(ctx, MsgLoadFailed)
		return nil, err
	}
	if !latest {
		c.logger.Warn("discarding stale list response", "page", page, "seq", seq)
		return resp, ErrSuperseded
	}
	c.logger.Debug("settings loaded", "page", page, "items", len(resp.Data), "total_pages", resp.Pagination.TotalPages)
	return resp, nil
}

// GoToPage reloads the given page clamped to [1, TotalPages].
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	c.mu.Lock()
	last := max(c.totalPages, 1)
	c.mu.Unlock()

	_, err := c.Reload(ctx, min(max(page, 1), last))
	return err
}

// RequestCreate opens the dialog in create mode.
func (c *Controller) RequestCreate() bool {
	return c.open(nil)
}

// RequestEdit opens the dialog to edit s.
func (c *Controller) RequestEdit(s model.Setting) bool {
	return c.open(&s)
}

// RequestEditByID fetches setting id and opens the dialog to edit it. A
// failed lookup, including a missing id, notifies the user.
func (c *Controller) RequestEditByID(ctx context.Context, id string) bool {
	s, err := c.api.Get(ctx, id)
	if err != nil {
		c.logger.Error("load setting", "id", id, "error", err)
		c.notifier.Notify(ctx, MsgLoadOneFailed)
		return false
	}
	return c.open(s)
}

func (c *Controller) open(target *model.Setting) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editor.Open(target) {
		return false
	}
	c.editing = target
	return true
}

func (c *Controller) clearEditing() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// ConfirmDelete deletes id and reloads the current page. If that page came
// back empty and is not the first page, it steps back one page and reloads
// once more.
func (c *Controller) ConfirmDelete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error("delete setting", "id", id, "error", err)
		c.notifier.Notify(ctx, MsgDeleteFailed)
		return err
	}
	c.logger.Info("setting deleted", "id", id)

	page := c.CurrentPage()
	resp, err := c.Reload(ctx, page)
	if err != nil {
		return ignoreSuperseded(err)
	}
	if len(resp.Data) == 0 && page > 1 {
		_, err = c.Reload(ctx, page-1)
		return ignoreSuperseded(err)
	}
	return nil
}

// Save updates the setting being edited, or creates one in create mode,
// then reloads the current page. Only the create/update failure is
// returned; a failed reload is reported to the user by Reload.
func (c *Controller) Save(ctx context.Context, data jsonvalue.Value) error {
	c.mu.Lock()
	target := c.editing
	page := c.currentPage
	c.mu.Unlock()

	var err error
	if target != nil {
		_, err = c.api.Update(ctx, target.ID, data)
	} else {
		_, err = c.api.Create(ctx, data)
	}
	if err != nil {
		c.logger.Error("save setting", "mode", modeOf(target), "error", err)
		return fmt.Errorf("save setting: %w", err)
	}
	c.logger.Info("setting saved", "mode", modeOf(target))

	_, _ = c.Reload(ctx, page)
	return nil
}

func modeOf(target *model.Setting) Mode {
	if target != nil {
		return ModeEdit
	}
	return ModeCreate
}

func ignoreSuperseded(err error) error {
	if errors.Is(err, ErrSuperseded) {
		return nil
	}
	return err
}

// State is a snapshot of the controller.
type State struct {
	CurrentPage int
	TotalPages  int
	Items       []model.Setting
	Loading     bool
	DialogOpen  bool
	Editing     *model.Setting // nil in create mode or when the dialog is closed
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		CurrentPage: c.currentPage,
		TotalPages:  c.totalPages,
		Items:       append([]model.Setting(nil), c.items...),
		Loading:     c.loading,
		DialogOpen:  c.editor.View().Open,
	}
	if c.editing != nil {
		e := *c.editing
		s.Editing = &e
	}
	return s
}

// CurrentPage returns the page whose items are displayed.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// TotalPages returns the page count reported by the last applied response.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Items returns the displayed settings.
func (c *Controller) Items() []model.Setting {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Setting(nil), c.items...)
}

// Loading reports whether the latest list request is still in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
