package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// CreateTemplate seeds the buffer when the dialog opens in create mode.
const CreateTemplate = "{\n  \n}"

var (
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrNotObject    = errors.New("setting data is not a JSON object")
	ErrSaveFailed   = errors.New("save failed")
	ErrSubmitting   = errors.New("submission already in progress")
	ErrDialogClosed = errors.New("dialog is closed")
)

// Mode is the purpose the dialog was opened for.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// SaveFunc persists parsed dialog data.
type SaveFunc func(ctx context.Context, data jsonvalue.Value) error

// Editor is the create/edit dialog: Closed, or Open in create or edit mode
// with a free-form text buffer. It is safe for concurrent use.
type Editor struct {
	save    SaveFunc
	onClose func()

	mu         sync.Mutex
	open       bool
	mode       Mode
	target     *model.Setting
	buffer     string
	errMsg     string
	submitting bool
}

// NewEditor returns a closed Editor. save is invoked on a successful parse;
// onClose, if non-nil, runs after every transition to Closed.
func NewEditor(save SaveFunc, onClose func()) *Editor {
	return &Editor{save: save, onClose: onClose}
}

// Open opens the dialog for target, or in create mode when target is nil,
// and reseeds the buffer. It reports false, changing nothing, while a
// submission is in flight.
func (e *Editor) Open(target *model.Setting) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return false
	}

	e.open = true
	e.errMsg = ""
	if target == nil {
		e.mode = ModeCreate
		e.target = nil
		e.buffer = CreateTemplate
		return true
	}
	t := *target
	e.mode = ModeEdit
	e.target = &t
	e.buffer = t.Data.Indent()
	return true
}

// SetBuffer replaces the buffer text. It is ignored unless the dialog is
// open and idle.
func (e *Editor) SetBuffer(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open || e.submitting {
		return false
	}
	e.buffer = text
	return true
}

// Cancel closes the dialog and discards the buffer. Both action buttons
// are disabled while submitting, so Cancel is ignored then.
func (e *Editor) Cancel() bool {
	e.mu.Lock()
	if !e.open || e.submitting {
		e.mu.Unlock()
		return false
	}
	e.reset()
	e.mu.Unlock()

	e.closed()
	return true
}

// Dismiss handles activation of the area outside the dialog. It behaves
// like Cancel.
func (e *Editor) Dismiss() bool {
	return e.Cancel()
}

// Submit parses the buffer and hands the result to the save callback. The
// dialog closes only when the callback succeeds; on any failure it stays
// open with an error message.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrDialogClosed
	}
	if e.submitting {
		e.mu.Unlock()
		return ErrSubmitting
	}
	e.errMsg = ""

	data, err := jsonvalue.Parse([]byte(e.buffer))
	if err != nil {
		e.errMsg = MsgInvalidJSON
		e.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if !data.IsObject() {
		e.errMsg = MsgNotObject
		e.mu.Unlock()
		return fmt.Errorf("%w: got %s", ErrNotObject, data.Kind())
	}
	e.submitting = true
	e.mu.Unlock()

	err = e.save(ctx, data)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.errMsg = MsgSaveFailed
		e.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	e.reset()
	e.mu.Unlock()

	e.closed()
	return nil
}

// reset moves to Closed. Callers hold e.mu.
func (e *Editor) reset() {
	e.open = false
	e.mode = ModeCreate
	e.target = nil
	e.buffer = ""
	e.errMsg = ""
}

func (e *Editor) closed() {
	if e.onClose != nil {
		e.onClose()
	}
}

// EditorView is a snapshot of the dialog for rendering.
type EditorView struct {
	Open        bool
	Mode        Mode
	Target      *model.Setting
	Title       string
	SubmitLabel string
	Buffer      string
	Error       string
	Submitting  bool
}

// View returns the current dialog state.
func (e *Editor) View() EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := EditorView{
		Open:       e.open,
		Mode:       e.mode,
		Buffer:     e.buffer,
		Error:      e.errMsg,
		Submitting: e.submitting,
	}
	if e.target != nil {
		t := *e.target
		v.Target = &t
	}

	v.Title, v.SubmitLabel = "Create New Setting", "Create"
	if e.mode == ModeEdit {
		v.Title, v.SubmitLabel = "Edit Setting", "Update"
	}
	if e.submitting {
		v.SubmitLabel = "Saving..."
	}
	return v
}
