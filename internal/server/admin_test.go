package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/rfhealth"
)

func TestHealthzReportsAliveBeforeReady(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	s.AdminMux().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	var status rfhealth.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "alive", status.Status)
}

func TestReadyzReflectsSetReady(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.AdminMux().ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 503, rec.Code)

	s.SetReady()

	rec = httptest.NewRecorder()
	s.AdminMux().ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 200, rec.Code)
	var status rfhealth.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ready", status.Status)
}

func TestDebugHardwareEndpointReturnsJSON(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.AdminMux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/hardware", nil))

	assert.Equal(t, 200, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "architecture")
}
