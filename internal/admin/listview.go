package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/me/jsonsettings/pkg/model"
)

// DefaultTimeLayout renders timestamps like a US-English locale string.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// ListView turns a page of settings into rows and pager state, and guards
// deletes behind a confirmation.
type ListView struct {
	ctrl      *Controller
	confirmer Confirmer
	layout    string
	loc       *time.Location
	now       func() time.Time
}

// ListOption configures a ListView.
type ListOption func(*ListView)

// WithTimeLayout sets the Go time layout for the created/updated columns.
func WithTimeLayout(layout string) ListOption {
	return func(lv *ListView) {
		if layout != "" {
			lv.layout = layout
		}
	}
}

// WithLocation sets the time zone timestamps are shown in.
func WithLocation(loc *time.Location) ListOption {
	return func(lv *ListView) {
		lv.loc = loc
	}
}

// WithNow sets the reference time for relative ages.
func WithNow(now func() time.Time) ListOption {
	return func(lv *ListView) {
		lv.now = now
	}
}

// NewListView returns a ListView over ctrl.
func NewListView(ctrl *Controller, confirmer Confirmer, opts ...ListOption) *ListView {
	lv := &ListView{
		ctrl:      ctrl,
		confirmer: confirmer,
		layout:    DefaultTimeLayout,
		loc:       time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(lv)
	}
	return lv
}

// Row is one rendered setting.
type Row struct {
	ID         string
	Data       string // two-space indented JSON
	Created    string
	Updated    string
	CreatedAgo string
	UpdatedAgo string
	Setting    model.Setting
}

// Pager is the state of the previous/next controls.
type Pager struct {
	Show         bool
	Page         int
	TotalPages   int
	Label        string
	PrevDisabled bool
	NextDisabled bool
	PrevPage     int
	NextPage     int
}

// View is everything a frontend needs to draw the list.
type View struct {
	Rows         []Row
	Empty        bool
	EmptyMessage string
	Pager        Pager
	Loading      bool
}

// Build renders items as page of totalPages.
func (lv *ListView) Build(items []model.Setting, page, totalPages int) View {
	v := View{
		Rows:  make([]Row, 0, len(items)),
		Pager: buildPager(page, totalPages),
	}
	for _, s := range items {
		v.Rows = append(v.Rows, lv.row(s))
	}
	if len(items) == 0 {
		v.Empty = true
		v.EmptyMessage = EmptyMessage
	}
	return v
}

// Render builds the view from the controller's current state.
func (lv *ListView) Render() View {
	st := lv.ctrl.State()
	v := lv.Build(st.Items, st.CurrentPage, st.TotalPages)
	v.Loading = st.Loading
	return v
}

func (lv *ListView) row(s model.Setting) Row {
	now := lv.now()
	return Row{
		ID:         s.ID,
		Data:       s.Data.Indent(),
		Created:    s.CreatedAt.In(lv.loc).Format(lv.layout),
		Updated:    s.UpdatedAt.In(lv.loc).Format(lv.layout),
		CreatedAgo: humanize.RelTime(s.CreatedAt, now, "ago", "from now"),
		UpdatedAgo: humanize.RelTime(s.UpdatedAt, now, "ago", "from now"),
		Setting:    s,
	}
}

func buildPager(page, totalPages int) Pager {
	p := Pager{
		Show:       totalPages > 1,
		Page:       page,
		TotalPages: totalPages,
		Label:      fmt.Sprintf("Page %d of %d", page, totalPages),
		PrevPage:   max(1, page-1),
		NextPage:   min(totalPages, page+1),
	}
	p.PrevDisabled = page <= 1
	p.NextDisabled = page >= totalPages
	if p.NextPage < 1 {
		p.NextPage = 1
	}
	return p
}

// RequestDelete asks for confirmation and, only on a yes, deletes id
// through the controller. It reports whether the delete was attempted.
func (lv *ListView) RequestDelete(ctx context.Context, id string) (bool, error) {
	ok, err := lv.confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}
	return true, lv.ctrl.ConfirmDelete(ctx, id)
}

// Edit opens the dialog for s.
func (lv *ListView) Edit(s model.Setting) bool {
	return lv.ctrl.RequestEdit(s)
}

// Previous moves one page back, staying on page 1.
func (lv *ListView) Previous(ctx context.Context) error {
	return lv.ctrl.GoToPage(ctx, lv.ctrl.CurrentPage()-1)
}

// Next moves one page forward, staying on the last page.
func (lv *ListView) Next(ctx context.Context) error {
	return lv.ctrl.GoToPage(ctx, lv.ctrl.CurrentPage()+1)
}
