package store

import (
	"context"
	"testing"
	"time"

	"github.com/me/jsonsettings/pkg/jsonvalue"
	"github.com/me/jsonsettings/pkg/model"
)

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewMemoryStore(WithClock(newTestClock().Now))
	})
}

func TestMemoryStore_Reset(t *testing.T) {
	seed := []model.Setting{
		{
			ID:        "550e8400-e29b-41d4-a716-446655440000",
			Data:      jsonvalue.MustParse(`{"theme":"dark"}`),
			CreatedAt: time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC),
		},
	}
	st := NewMemoryStore()
	ctx := context.Background()

	st.Reset(seed)
	if _, err := st.CreateSetting(ctx, jsonvalue.Object()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}

	st.Reset(seed)
	if st.Len() != 1 {
		t.Fatalf("len after reset = %d, want 1", st.Len())
	}
	got, _ := st.GetSetting(ctx, seed[0].ID)
	if got == nil || !jsonvalue.Equal(got.Data, seed[0].Data) {
		t.Errorf("seed not restored: %+v", got)
	}
}

func TestMemoryStore_ResultsAreCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	created, _ := st.CreateSetting(ctx, jsonvalue.MustParse(`{"a":1}`))

	created.Data = jsonvalue.MustParse(`{"mutated":true}`)

	got, _ := st.GetSetting(ctx, created.ID)
	if _, ok := got.Data.Get("mutated"); ok {
		t.Error("caller mutation leaked into the store")
	}
}
