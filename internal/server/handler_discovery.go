package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Health    string         `json:"health"`
	Endpoints []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, discoveryResponse{
		Name:    "JSON Settings API",
		Version: Version,
		Health:  "/health",
		Endpoints: []endpointInfo{
			{"/api/settings", []string{"GET", "POST"}, "List settings (?page, ?limit) or create one"},
			{"/api/settings/{id}", []string{"GET", "PUT", "DELETE"}, "Single setting operations"},
			{"/health", []string{"GET"}, "Liveness check"},
		},
	})
}
