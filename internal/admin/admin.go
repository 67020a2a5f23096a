// Package admin holds the settings administration logic shared by the web
// UI and the CLI: the Controller owns paging and orchestrates API calls,
// the Editor owns the JSON text buffer of the create/edit dialog, and the
// ListView turns a page of settings into something a frontend can render.
package admin

import (
	"context"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

// User-visible messages.
const (
	MsgLoadFailed    = "Failed to load settings"
	MsgLoadOneFailed = "Failed to load setting"
	MsgDeleteFailed  = "Failed to delete setting"
	MsgSaveFailed    = "Failed to save setting"
	MsgInvalidJSON   = "Invalid JSON format"
	MsgNotObject     = "Setting data must be a JSON object"

	DeletePrompt = "Are you sure you want to delete this setting?"
	EmptyMessage = `No settings found. Click "Create Setting" to get started!`
)

// API is the settings API as seen by the controller. *client.Client
// satisfies it.
type API interface {
	List(ctx context.Context, page, limit int) (*model.ListResponse, error)
	Get(ctx context.Context, id string) (*model.Setting, error)
	Create(ctx context.Context, data jsonvalue.Value) (*model.Setting, error)
	Update(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error)
	Delete(ctx context.Context, id string) error
}

// Notifier shows a blocking notification to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(ctx context.Context, message string)

func (f NotifyFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }
