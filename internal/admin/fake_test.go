package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/me/jsonsettings/internal/store"
	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

var errUnavailable = errors.New("connection refused")

// fakeAPI serves the API from a MemoryStore and records calls. Individual
// calls can be made to fail, and List calls for a page can be held until
// released.
type fakeAPI struct {
	store *store.MemoryStore

	mu        sync.Mutex
	calls     []string
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	gates     map[int]chan struct{}
}

func newFakeAPI() *fakeAPI {
	clock := time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)
	return &fakeAPI{
		store: store.NewMemoryStore(store.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		})),
		gates: make(map[int]chan struct{}),
	}
}

// seed creates n settings {"n": i}; the last one created is listed first.
func (f *fakeAPI) seed(t *testing.T, n int) []*model.Setting {
	t.Helper()
	var out []*model.Setting
	for i := 0; i < n; i++ {
		s, err := f.store.CreateSetting(context.Background(), jsonvalue.Object(jsonvalue.Member{Key: "n", Value: jsonvalue.Int(int64(i))}))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, s)
	}
	return out
}

// hold makes List(page) block until the returned func is called.
func (f *fakeAPI) hold(page int) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[page] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) fail(target *error, err error) {
	f.mu.Lock()
	*target = err
	f.mu.Unlock()
}

func (f *fakeAPI) errFor(target *error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *target
}

func (f *fakeAPI) List(ctx context.Context, page, limit int) (*model.ListResponse, error) {
	f.record(fmt.Sprintf("list %d", page))

	f.mu.Lock()
	gate := f.gates[page]
	delete(f.gates, page)
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	if err := f.errFor(&f.listErr); err != nil {
		return nil, err
	}
	opts := model.ListOptions{Page: page, Limit: limit}
	items, total, err := f.store.ListSettings(ctx, opts)
	if err != nil {
		return nil, err
	}
	resp := &model.ListResponse{Data: []model.Setting{}, Pagination: model.NewPagination(opts, total)}
	for _, s := range items {
		resp.Data = append(resp.Data, *s)
	}
	return resp, nil
}

func (f *fakeAPI) Get(ctx context.Context, id string) (*model.Setting, error) {
	f.record("get " + id)
	if err := f.errFor(&f.getErr); err != nil {
		return nil, err
	}
	s, err := f.store.GetSetting(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("setting %s: not found", id)
	}
	return s, nil
}

func (f *fakeAPI) Create(ctx context.Context, data jsonvalue.Value) (*model.Setting, error) {
	f.record("create")
	if err := f.errFor(&f.createErr); err != nil {
		return nil, err
	}
	return f.store.CreateSetting(ctx, data)
}

func (f *fakeAPI) Update(ctx context.Context, id string, data jsonvalue.Value) (*model.Setting, error) {
	f.record("update " + id)
	if err := f.errFor(&f.updateErr); err != nil {
		return nil, err
	}
	s, err := f.store.UpdateSetting(ctx, id, data)
	if err == nil && s == nil {
		return nil, fmt.Errorf("setting %s: not found", id)
	}
	return s, err
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.record("delete " + id)
	if err := f.errFor(&f.deleteErr); err != nil {
		return err
	}
	return f.store.DeleteSetting(ctx, id)
}

// notes records notifications.
type notes struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notes) Notify(_ context.Context, message string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, message)
	n.mu.Unlock()
}

func (n *notes) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// answer is a Confirmer with a fixed reply that counts prompts.
type answer struct {
	yes     bool
	err     error
	prompts []string
}

func (a *answer) Confirm(_ context.Context, prompt string) (bool, error) {
	a.prompts = append(a.prompts, prompt)
	return a.yes, a.err
}
