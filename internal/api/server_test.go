package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faisaal99/mipssim/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthCheck(t *testing.T) {
	s := api.NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CreateSessionAndStep(t *testing.T) {
	s := api.NewServer(0)
	handler := s.Handler()

	rec := postJSON(t, handler, "/api/v1/session", map[string]any{
		"source": []string{".text", "main:", "addi $t0,$zero,5", "halt"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	stepRec := postJSON(t, handler, "/api/v1/session/"+id+"/step", nil)
	assert.Equal(t, http.StatusOK, stepRec.Code)

	stateReq := httptest.NewRequest(http.MethodGet, "/api/v1/session/"+id+"/state", nil)
	stateRec := httptest.NewRecorder()
	handler.ServeHTTP(stateRec, stateReq)
	assert.Equal(t, http.StatusOK, stateRec.Code)

	var state map[string]any
	require.NoError(t, json.Unmarshal(stateRec.Body.Bytes(), &state))
	assert.Contains(t, state, "registers")
}

func TestServer_CreateSessionInvalidProgram(t *testing.T) {
	s := api.NewServer(0)
	rec := postJSON(t, s.Handler(), "/api/v1/session", map[string]any{
		"source": []string{".text", "halt"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_UnknownSessionReturns404(t *testing.T) {
	s := api.NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RunToHalt(t *testing.T) {
	s := api.NewServer(0)
	handler := s.Handler()

	rec := postJSON(t, handler, "/api/v1/session", map[string]any{
		"source": []string{".text", "main:", "addi $t0,$zero,1", "halt"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	runRec := postJSON(t, handler, "/api/v1/session/"+id+"/run", nil)
	require.Equal(t, http.StatusOK, runRec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(runRec.Body.Bytes(), &result))
	assert.Equal(t, true, result["halted"])
}
