package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/me/jsonsettings/pkg/jsonvalue"
)

func TestSetting_JSONShape(t *testing.T) {
	ts := time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC)
	s := Setting{
		ID:        "550e8400-e29b-41d4-a716-446655440000",
		Data:      jsonvalue.MustParse(`{"theme":"dark","notifications":true}`),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"550e8400-e29b-41d4-a716-446655440000","data":{"theme":"dark","notifications":true},"created_at":"2025-01-19T10:00:00Z","updated_at":"2025-01-19T10:00:00Z"}`
	if string(b) != want {
		t.Errorf("json = %s\nwant %s", b, want)
	}

	var back Setting
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !jsonvalue.Equal(back.Data, s.Data) || !back.CreatedAt.Equal(ts) {
		t.Errorf("round trip = %+v", back)
	}
}

func TestSettingInput_Validate(t *testing.T) {
	tests := []struct {
		body    string
		wantErr bool
	}{
		{`{"data":{"a":1}}`, false},
		{`{"data":{}}`, false},
		{`{"data":[1,2]}`, true},
		{`{"data":"x"}`, true},
		{`{}`, true},
	}
	for _, tt := range tests {
		var in SettingInput
		if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if got := in.Validate() != nil; got != tt.wantErr {
			t.Errorf("Validate(%s) error = %v, want %v", tt.body, got, tt.wantErr)
		}
	}
}
