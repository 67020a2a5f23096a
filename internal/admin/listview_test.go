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

func TestListView_BuildRows(t *testing.T) {
	created := time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 1, 19, 15, 30, 5, 0, time.UTC)
	now := time.Date(2025, 1, 19, 17, 30, 5, 0, time.UTC)

	lv := NewListView(nil, nil, WithLocation(time.UTC), WithNow(func() time.Time { return now }))
	v := lv.Build([]model.Setting{{
		ID:        "550e8400-e29b-41d4-a716-446655440000",
		Data:      jsonvalue.MustParse(`{"theme":"dark","notifications":true}`),
		CreatedAt: created,
		UpdatedAt: updated,
	}}, 1, 1)

	require.Len(t, v.Rows, 1)
	row := v.Rows[0]
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", row.ID)
	assert.Equal(t, "{\n  \"theme\": \"dark\",\n  \"notifications\": true\n}", row.Data)
	assert.Equal(t, "1/19/2025, 10:00:00 AM", row.Created)
	assert.Equal(t, "1/19/2025, 3:30:05 PM", row.Updated)
	assert.Equal(t, "7 hours ago", row.CreatedAgo)
	assert.Equal(t, "2 hours ago", row.UpdatedAgo)
	assert.False(t, v.Empty)
	assert.Empty(t, v.EmptyMessage)
}

func TestListView_TimeLayoutAndLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	lv := NewListView(nil, nil, WithLocation(loc), WithTimeLayout(time.RFC3339))
	v := lv.Build([]model.Setting{{
		ID:        "x",
		Data:      jsonvalue.Object(),
		CreatedAt: time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC),
	}}, 1, 1)
	assert.Equal(t, "2025-01-19T12:00:00+02:00", v.Rows[0].Created)
	assert.Equal(t, "{}", v.Rows[0].Data)
}

func TestListView_Empty(t *testing.T) {
	lv := NewListView(nil, nil)
	v := lv.Build(nil, 1, 0)
	assert.True(t, v.Empty)
	assert.Equal(t, `No settings found. Click "Create Setting" to get started!`, v.EmptyMessage)
	assert.Empty(t, v.Rows)
	assert.False(t, v.Pager.Show)
}

func TestListView_Pager(t *testing.T) {
	tests := []struct {
		page, total  int
		show         bool
		prevDisabled bool
		nextDisabled bool
		prev, next   int
		label        string
	}{
		{1, 0, false, true, true, 1, 1, "Page 1 of 0"},
		{1, 1, false, true, true, 1, 1, "Page 1 of 1"},
		{1, 3, true, true, false, 1, 2, "Page 1 of 3"},
		{2, 3, true, false, false, 1, 3, "Page 2 of 3"},
		{3, 3, true, false, true, 2, 3, "Page 3 of 3"},
	}
	for _, tt := range tests {
		p := buildPager(tt.page, tt.total)
		assert.Equal(t, tt.show, p.Show, tt.label)
		assert.Equal(t, tt.prevDisabled, p.PrevDisabled, tt.label)
		assert.Equal(t, tt.nextDisabled, p.NextDisabled, tt.label)
		assert.Equal(t, tt.prev, p.PrevPage, tt.label)
		assert.Equal(t, tt.next, p.NextPage, tt.label)
		assert.Equal(t, tt.label, p.Label)
	}
}

func TestListView_Render(t *testing.T) {
	api := newFakeAPI()
	api.seed(t, 12)
	ctrl := NewController(api, &notes{})
	lv := NewListView(ctrl, &answer{})

	_, err := ctrl.Reload(context.Background(), 2)
	require.NoError(t, err)

	v := lv.Render()
	assert.Len(t, v.Rows, 2)
	assert.True(t, v.Pager.Show)
	assert.Equal(t, "Page 2 of 2", v.Pager.Label)
	assert.True(t, v.Pager.NextDisabled)
	assert.False(t, v.Loading)
}

func TestListView_PreviousNext(t *testing.T) {
	api := newFakeAPI()
	api.seed(t, 25)
	ctrl := NewController(api, &notes{})
	lv := NewListView(ctrl, &answer{})
	ctx := context.Background()
	_, err := ctrl.Reload(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, lv.Previous(ctx))
	assert.Equal(t, 1, ctrl.CurrentPage())
	require.NoError(t, lv.Next(ctx))
	require.NoError(t, lv.Next(ctx))
	require.NoError(t, lv.Next(ctx))
	assert.Equal(t, 3, ctrl.CurrentPage())
	assert.Equal(t, []string{"list 1", "list 1", "list 2", "list 3", "list 3"}, api.Calls())
}

func TestListView_RequestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		api := newFakeAPI()
		seeded := api.seed(t, 2)
		ctrl := NewController(api, &notes{})
		no := &answer{yes: false}

		attempted, err := NewListView(ctrl, no).RequestDelete(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.False(t, attempted)
		assert.Equal(t, []string{DeletePrompt}, no.prompts)
		assert.Empty(t, api.Calls(), "no API call on a negative confirmation")
	})

	t.Run("accepted", func(t *testing.T) {
		api := newFakeAPI()
		seeded := api.seed(t, 2)
		ctrl := NewController(api, &notes{})

		attempted, err := NewListView(ctrl, &answer{yes: true}).RequestDelete(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.True(t, attempted)
		assert.Equal(t, []string{"delete " + seeded[0].ID, "list 1"}, api.Calls())
		assert.Equal(t, 1, api.store.Len())
	})

	t.Run("prompt error", func(t *testing.T) {
		api := newFakeAPI()
		seeded := api.seed(t, 1)
		ctrl := NewController(api, &notes{})
		broken := &answer{err: errors.New("terminal closed")}

		attempted, err := NewListView(ctrl, broken).RequestDelete(ctx, seeded[0].ID)
		require.Error(t, err)
		assert.False(t, attempted)
		assert.Empty(t, api.Calls())
	})
}

func TestListView_Edit(t *testing.T) {
	api := newFakeAPI()
	seeded := api.seed(t, 1)
	ctrl := NewController(api, &notes{})

	require.True(t, NewListView(ctrl, &answer{}).Edit(*seeded[0]))
	assert.Equal(t, ModeEdit, ctrl.Editor().View().Mode)
}
