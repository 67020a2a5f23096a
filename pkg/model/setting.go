package model

import (
	"time"

	"github.com/me/jsonsettings/pkg/jsonvalue"
)

// Setting is a JSON-valued configuration record. The backing store assigns
// ID and both timestamps; clients only ever supply Data.
type Setting struct {
	ID        string          `json:"id"`
	Data      jsonvalue.Value `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SettingInput is the request body of create and update.
type SettingInput struct {
	Data jsonvalue.Value `json:"data"`
}

// Validate checks that Data is a JSON object.
func (in SettingInput) Validate() *APIError {
	if !in.Data.IsObject() {
		return NewValidationError("data must be a JSON object, got " + in.Data.Kind().String())
	}
	return nil
}
