package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/jsonsettings/internal/logging"
	"github.com/me/jsonsettings/pkg/model"
)

// maxBodyBytes bounds create and update request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	opts := model.DefaultListOptions()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			respondError(w, http.StatusBadRequest, model.NewValidationError("page must be an integer >= 1"))
			return
		}
		opts.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > model.MaxPageSize {
			respondError(w, http.StatusBadRequest, model.NewValidationError("limit must be an integer between 1 and 100"))
			return
		}
		opts.Limit = limit
	}

	settings, total, err := s.store.ListSettings(r.Context(), opts)
	if err != nil {
		s.internalError(w, r, "Failed to list settings", err)
		return
	}

	data := make([]model.Setting, len(settings))
	for i, st := range settings {
		data[i] = *st
	}
	respondJSON(w, http.StatusOK, model.ListResponse{
		Data:       data,
		Pagination: model.NewPagination(opts, total),
	})
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st, err := s.store.GetSetting(r.Context(), id)
	if err != nil {
		s.internalError(w, r, "Failed to get setting", err)
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("setting", id))
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	st, err := s.store.CreateSetting(r.Context(), in.Data)
	if err != nil {
		s.internalError(w, r, "Failed to create setting", err)
		return
	}
	logging.FromContext(r.Context(), s.logger).Info("setting created", "id", st.ID)
	respondJSON(w, http.StatusCreated, st)
}

func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	st, err := s.store.UpdateSetting(r.Context(), id, in.Data)
	if err != nil {
		s.internalError(w, r, "Failed to update setting", err)
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, model.NewNotFoundError("setting", id))
		return
	}
	logging.FromContext(r.Context(), s.logger).Info("setting updated", "id", id)
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteSetting(r.Context(), id); err != nil {
		s.internalError(w, r, "Failed to delete setting", err)
		return
	}
	logging.FromContext(r.Context(), s.logger).Info("setting deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeInput reads and validates a {"data": {...}} request body. On
// failure it writes the 400 response and returns false.
func decodeInput(w http.ResponseWriter, r *http.Request) (model.SettingInput, bool) {
	var in model.SettingInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, model.NewValidationError("Invalid JSON body: "+err.Error()))
		return in, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, model.NewValidationError("Invalid JSON body: unexpected data after the top-level value"))
		return in, false
	}
	if apiErr := in.Validate(); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr)
		return in, false
	}
	return in, true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.FromContext(r.Context(), s.logger).Error(msg, "error", err)
	respondError(w, http.StatusInternalServerError, model.NewInternalError(msg))
}
