package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/jsonsettings/pkg/model"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes an error response: {"error": {...}}.
func respondError(w http.ResponseWriter, status int, apiErr *model.APIError) {
	respondJSON(w, status, model.ErrorResponse{Error: apiErr})
}
