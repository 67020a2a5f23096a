// Package ui serves the settings administration pages. Each request builds
// its own admin.Controller against the settings API, so the web UI and
// the CLI share one set of rules for paging, editing and deleting.
package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/jsonsettings/internal/admin"
	"github.com/me/jsonsettings/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	api       admin.API
	logger    *slog.Logger
	pageSize  int
	layout    string
	loc       *time.Location
	now       func() time.Time
	startTime time.Time
	secure    bool
}

// Config holds UI configuration.
type Config struct {
	PageSize   int
	TimeLayout string
	Location   *time.Location
	Secure     bool // Use secure cookies for HTTPS
}

// New creates a new UI handler backed by api.
func New(api admin.API, logger *slog.Logger, cfg Config) *UI {
	ui := &UI{
		api:       api,
		logger:    logger.With("component", "ui"),
		pageSize:  cfg.PageSize,
		layout:    cfg.TimeLayout,
		loc:       cfg.Location,
		now:       time.Now,
		startTime: time.Now(),
		secure:    cfg.Secure,
	}
	if ui.loc == nil {
		ui.loc = time.Local
	}
	return ui
}

// notes collects notifications raised while serving one request.
type notes struct {
	mu       sync.Mutex
	messages []string
}

func (n *notes) Notify(_ context.Context, message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *notes) list() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// page is the per-request admin state.
type page struct {
	ctrl  *admin.Controller
	view  *admin.ListView
	notes *notes
}

func (ui *UI) newPage(confirmer admin.Confirmer) *page {
	n := &notes{}
	ctrl := admin.NewController(ui.api, n,
		admin.WithPageSize(ui.pageSize),
		admin.WithLogger(ui.logger),
	)
	view := admin.NewListView(ctrl, confirmer,
		admin.WithTimeLayout(ui.layout),
		admin.WithLocation(ui.loc),
		admin.WithNow(ui.now),
	)
	return &page{ctrl: ctrl, view: view, notes: n}
}

// HandleIndex renders the settings list, optionally with the create or
// edit dialog open.
func (ui *UI) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	p := ui.newPage(nil)

	ui.load(ctx, p, parsePage(q.Get("page")))

	switch {
	case q.Get("dialog") == "create":
		p.ctrl.RequestCreate()
	case q.Get("edit") != "":
		p.ctrl.RequestEditByID(ctx, q.Get("edit"))
	}

	ui.renderIndex(w, r, p, http.StatusOK)
}

// HandleSave submits the dialog form. A successful save redirects back to
// the list; a rejected one re-renders the dialog with its error.
func (ui *UI) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	p := ui.newPage(nil)

	ui.load(ctx, p, parsePage(r.FormValue("page")))

	// The posted buffer replaces the stored data, so an edit only needs the
	// target id. A setting deleted meanwhile fails the update instead.
	id := r.FormValue("id")
	var opened bool
	if id != "" {
		opened = p.ctrl.RequestEdit(model.Setting{ID: id})
	} else {
		opened = p.ctrl.RequestCreate()
	}
	if !opened {
		ui.redirectToPage(w, r, p)
		return
	}

	p.ctrl.Editor().SetBuffer(r.FormValue("buffer"))
	err := p.ctrl.Editor().Submit(ctx)
	switch {
	case err == nil:
		ui.redirectToPage(w, r, p)
	case errors.Is(err, admin.ErrInvalidJSON), errors.Is(err, admin.ErrNotObject), errors.Is(err, admin.ErrSaveFailed):
		ui.logger.Debug("dialog rejected", "id", id, "error", err)
		ui.renderIndex(w, r, p, http.StatusUnprocessableEntity)
	default:
		ui.renderError(w, "Failed to save setting", err)
	}
}

// HandleDelete deletes a setting once the form carries confirm=yes. Without
// it, a confirmation page is shown instead.
func (ui *UI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	confirmed := r.FormValue("confirm") == "yes"

	p := ui.newPage(admin.ConfirmFunc(func(context.Context, string) (bool, error) {
		return confirmed, nil
	}))
	pageNum := parsePage(r.FormValue("page"))

	if !confirmed {
		ui.render(w, http.StatusOK, "confirm", map[string]any{
			"Title":  "Delete Setting",
			"Prompt": admin.DeletePrompt,
			"ID":     id,
			"Page":   pageNum,
		})
		return
	}

	ui.load(ctx, p, pageNum)
	if _, err := p.view.RequestDelete(ctx, id); err != nil {
		ui.logger.Warn("delete failed", "id", id, "error", err)
	}
	ui.redirectToPage(w, r, p)
}

// HandleHealth reports that the UI process is up.
func (ui *UI) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"uptime": time.Since(ui.startTime).Round(time.Second).String(),
	})
}

// load shows page, or the last page when page is past the end of the list.
func (ui *UI) load(ctx context.Context, p *page, page int) {
	if _, err := p.ctrl.Reload(ctx, page); err != nil {
		return
	}
	if page > max(p.ctrl.TotalPages(), 1) {
		_ = p.ctrl.GoToPage(ctx, page)
	}
}

func (ui *UI) redirectToPage(w http.ResponseWriter, r *http.Request, p *page) {
	SetFlash(w, p.notes.list(), ui.secure)
	http.Redirect(w, r, pageURL(p.ctrl.CurrentPage()), http.StatusSeeOther)
}

func (ui *UI) renderIndex(w http.ResponseWriter, r *http.Request, p *page, status int) {
	notices := slices.Concat(FlashFromContext(r.Context()), p.notes.list())
	st := p.ctrl.State()
	ui.render(w, status, "index", map[string]any{
		"Title":        "Settings Management System",
		"View":         p.view.Render(),
		"Dialog":       p.ctrl.Editor().View(),
		"Page":         st.CurrentPage,
		"Notices":      notices,
		"DeletePrompt": admin.DeletePrompt,
	})
}

func (ui *UI) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, name, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Error",
		"Message": message,
	})
}

// parsePage reads a 1-based page number; anything unusable means page 1.
func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func pageURL(page int) string {
	return "/?page=" + strconv.Itoa(page)
}
