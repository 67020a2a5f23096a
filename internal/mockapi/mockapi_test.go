package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/jsonsettings/pkg/model"
)

func list(t *testing.T, srv *Server) model.ListResponse {
	t.Helper()
	resp, err := http.Get(srv.URL() + "/settings?page=1&limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestDefaultSeed(t *testing.T) {
	srv := New()
	defer srv.Close()

	out := list(t, srv)
	require.Len(t, out.Data, 2)
	assert.Equal(t, 2, out.Pagination.Total)
	assert.Equal(t, 1, out.Pagination.TotalPages)
	assert.Equal(t, []string{"GET /api/settings"}, srv.Requests())
}

func TestResetRestoresSeed(t *testing.T) {
	srv := New()
	defer srv.Close()

	resp, err := http.Post(srv.URL()+"/settings", "application/json", strings.NewReader(`{"data":{"newSetting":true}}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3, srv.Len())

	srv.Reset()
	assert.Equal(t, 2, srv.Len())
	assert.Empty(t, srv.Requests())
}

func TestInstancesAreIsolated(t *testing.T) {
	a := New()
	defer a.Close()
	b := New()
	defer b.Close()

	req, _ := http.NewRequest(http.MethodDelete, a.URL()+"/settings/"+ThemeID, nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestSeedEmpty(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.Seed()

	out := list(t, srv)
	assert.Empty(t, out.Data)
	assert.Equal(t, 0, out.Pagination.TotalPages)
}

func TestFailNext(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.FailNext(http.MethodGet, http.StatusServiceUnavailable)

	resp, err := http.Get(srv.URL() + "/settings")
	require.NoError(t, err)
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, model.ErrInternal, body.Error.Code)

	// Only the next request fails.
	list(t, srv)
	assert.Equal(t, 2, srv.Count(http.MethodGet))
	assert.Equal(t, 0, srv.Count(http.MethodDelete))
}
