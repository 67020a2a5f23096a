package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

type saveRecorder struct {
	calls []jsonvalue.Value
	err   error
}

func (r *saveRecorder) save(_ context.Context, data jsonvalue.Value) error {
	r.calls = append(r.calls, data)
	return r.err
}

func TestEditor_StartsClosed(t *testing.T) {
	e := NewEditor((&saveRecorder{}).save, nil)
	v := e.View()
	assert.False(t, v.Open)
	assert.ErrorIs(t, e.Submit(context.Background()), ErrDialogClosed)
	assert.False(t, e.SetBuffer("{}"))
	assert.False(t, e.Cancel())
}

func TestEditor_OpenCreate(t *testing.T) {
	e := NewEditor((&saveRecorder{}).save, nil)
	require.True(t, e.Open(nil))

	v := e.View()
	assert.True(t, v.Open)
	assert.Equal(t, ModeCreate, v.Mode)
	assert.Equal(t, "{\n  \n}", v.Buffer)
	assert.Equal(t, "Create New Setting", v.Title)
	assert.Equal(t, "Create", v.SubmitLabel)
	assert.Nil(t, v.Target)
}

func TestEditor_OpenEdit(t *testing.T) {
	e := NewEditor((&saveRecorder{}).save, nil)
	s := model.Setting{ID: "abc", Data: jsonvalue.MustParse(`{"theme":"dark","notifications":true}`)}
	require.True(t, e.Open(&s))

	v := e.View()
	assert.Equal(t, ModeEdit, v.Mode)
	assert.Equal(t, "{\n  \"theme\": \"dark\",\n  \"notifications\": true\n}", v.Buffer)
	assert.Equal(t, "Edit Setting", v.Title)
	assert.Equal(t, "Update", v.SubmitLabel)
	require.NotNil(t, v.Target)
	assert.Equal(t, "abc", v.Target.ID)
}

func TestEditor_InvalidJSON(t *testing.T) {
	rec := &saveRecorder{}
	e := NewEditor(rec.save, nil)
	e.Open(nil)
	e.SetBuffer("{invalid json}")

	err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidJSON)

	v := e.View()
	assert.True(t, v.Open, "dialog stays open")
	assert.Equal(t, "Invalid JSON format", v.Error)
	assert.Equal(t, "{invalid json}", v.Buffer)
	assert.Empty(t, rec.calls, "save must not be invoked")
}

func TestEditor_NotAnObject(t *testing.T) {
	rec := &saveRecorder{}
	e := NewEditor(rec.save, nil)
	e.Open(nil)

	for _, text := range []string{`[1,2]`, `"str"`, `42`, `null`} {
		e.SetBuffer(text)
		err := e.Submit(context.Background())
		require.ErrorIs(t, err, ErrNotObject, text)
		assert.Equal(t, "Setting data must be a JSON object", e.View().Error)
	}
	assert.Empty(t, rec.calls)
}

func TestEditor_SaveFailure(t *testing.T) {
	rec := &saveRecorder{err: errors.New("boom")}
	closed := 0
	e := NewEditor(rec.save, func() { closed++ })
	e.Open(nil)
	e.SetBuffer(`{"a":1}`)

	err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrSaveFailed)

	v := e.View()
	assert.True(t, v.Open)
	assert.Equal(t, "Failed to save setting", v.Error)
	assert.Equal(t, `{"a":1}`, v.Buffer)
	assert.False(t, v.Submitting)
	assert.Equal(t, 0, closed)
	require.Len(t, rec.calls, 1)
}

func TestEditor_SubmitSuccessCloses(t *testing.T) {
	rec := &saveRecorder{}
	closed := 0
	e := NewEditor(rec.save, func() { closed++ })
	e.Open(nil)
	e.SetBuffer(`{"newSetting": true}`)

	require.NoError(t, e.Submit(context.Background()))

	assert.False(t, e.View().Open)
	assert.Equal(t, 1, closed)
	require.Len(t, rec.calls, 1)
	assert.True(t, jsonvalue.Equal(jsonvalue.MustParse(`{"newSetting":true}`), rec.calls[0]))
}

func TestEditor_ErrorClearsOnNextSubmitAndReopen(t *testing.T) {
	rec := &saveRecorder{}
	e := NewEditor(rec.save, nil)
	e.Open(nil)
	e.SetBuffer("nope")
	require.Error(t, e.Submit(context.Background()))
	require.NotEmpty(t, e.View().Error)

	e.Open(nil)
	assert.Empty(t, e.View().Error)
	assert.Equal(t, CreateTemplate, e.View().Buffer)
}

func TestEditor_CancelAndDismiss(t *testing.T) {
	closed := 0
	e := NewEditor((&saveRecorder{}).save, func() { closed++ })

	e.Open(nil)
	e.SetBuffer(`{"draft":true}`)
	assert.True(t, e.Cancel())
	assert.False(t, e.View().Open)
	assert.Empty(t, e.View().Buffer, "buffer discarded")

	e.Open(nil)
	assert.True(t, e.Dismiss())
	assert.False(t, e.View().Open)
	assert.Equal(t, 2, closed)
}

func TestEditor_BusyWhileSubmitting(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	e := NewEditor(func(ctx context.Context, data jsonvalue.Value) error {
		close(started)
		<-release
		return nil
	}, nil)
	e.Open(nil)
	e.SetBuffer(`{}`)

	done := make(chan error, 1)
	go func() { done <- e.Submit(context.Background()) }()
	<-started

	v := e.View()
	assert.True(t, v.Submitting)
	assert.Equal(t, "Saving...", v.SubmitLabel)
	assert.ErrorIs(t, e.Submit(context.Background()), ErrSubmitting)
	assert.False(t, e.Cancel(), "cancel is disabled while submitting")
	assert.False(t, e.Dismiss())
	assert.False(t, e.SetBuffer("x"))
	assert.False(t, e.Open(nil))

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not finish")
	}
	assert.False(t, e.View().Open)
	assert.False(t, e.View().Submitting)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "create", ModeCreate.String())
	assert.Equal(t, "edit", ModeEdit.String())
}
