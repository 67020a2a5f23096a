package model

import "testing"

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrNotFound, Message: "Setting 'abc' not found"}
	want := "NOT_FOUND: Setting 'abc' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Setting", "550e8400")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "Setting '550e8400' not found" {
		t.Errorf("Message = %q, want %q", err.Message, "Setting '550e8400' not found")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("limit must be between 1 and 100")
	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
}

func TestNewInternalError(t *testing.T) {
	err := NewInternalError("Failed to fetch settings")
	if err.Code != ErrInternal {
		t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
	}
}
