package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpadapter "github.com/couchcryptid/rainharvest/internal/adapter/http"
	"github.com/couchcryptid/rainharvest/internal/domain"
	"github.com/couchcryptid/rainharvest/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockSimulator struct {
	result   simulation.Result
	runErr   error
	readyErr error
	lastRun  *simulation.Params
}

func (m *mockSimulator) Run(_ context.Context, params simulation.Params) (simulation.Result, error) {
	m.lastRun = &params
	if m.runErr != nil {
		return simulation.Result{}, m.runErr
	}
	return m.result, nil
}

func (m *mockSimulator) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(sim *mockSimulator) *httpadapter.Server {
	return httpadapter.NewServer(":0", sim, slog.Default())
}

// --- ops endpoints ---

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockSimulator{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockSimulator{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockSimulator{readyErr: fmt.Errorf("not ready yet")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSimulator{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// --- simulation endpoint ---

func TestSimulateReturnsResult(t *testing.T) {
	eff := 100.0
	sim := &mockSimulator{
		result: simulation.Result{
			ID:             "sim-abc123",
			Sizing:         domain.SizingResult{RecommendedCapacity: 5400, TotalOverflow: 0},
			TotalRainfall:  1825,
			TotalHarvested: 146_000,
			Efficiency:     &eff,
			Seed:           42,
		},
	}
	srv := newTestServer(sim)

	payload := `{"roof_area":100,"runoff_coefficient":0.8,"daily_consumption":200,"mean_rainfall":5,"std_dev":2,"seed":42}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sim-abc123", body["id"])
	assert.Equal(t, 146_000.0, body["total_harvested_liters"])
	assert.Equal(t, 100.0, body["efficiency_percent"])

	require.NotNil(t, sim.lastRun)
	assert.Equal(t, 100.0, sim.lastRun.RoofArea)
	require.NotNil(t, sim.lastRun.Seed)
	assert.Equal(t, uint64(42), *sim.lastRun.Seed)
}

func TestSimulateRejectsInvalidParameter(t *testing.T) {
	sim := &mockSimulator{
		runErr: &domain.InvalidParameterError{Field: "roof_area", Value: -1, Reason: "must be positive"},
	}
	srv := newTestServer(sim)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", strings.NewReader(`{"roof_area":-1}`))
	req.Header.Set("Content-Type", "application/json")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_parameter", body["error"])
	assert.Equal(t, "roof_area", body["field"])
}

func TestSimulateRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(&mockSimulator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", strings.NewReader("not-json{{{"))
	req.Header.Set("Content-Type", "application/json")

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- estimate endpoint ---

func TestEstimateFormPath(t *testing.T) {
	srv := newTestServer(&mockSimulator{})

	form := url.Values{"roof_area": {"100"}, "rainfall": {"10"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["collected_water"])
}

func TestEstimateJSONPath(t *testing.T) {
	srv := newTestServer(&mockSimulator{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(`{"roof_area":50,"rainfall":20}`))
	req.Header.Set("Content-Type", "application/json")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["collected_water"])
}

func TestEstimateRejectsNonNumericInput(t *testing.T) {
	srv := newTestServer(&mockSimulator{})

	form := url.Values{"roof_area": {"big"}, "rainfall": {"10"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_parameter", body["error"])
	assert.Equal(t, "roof_area", body["field"])
}

func TestEstimateRejectsNegativeInput(t *testing.T) {
	srv := newTestServer(&mockSimulator{})

	form := url.Values{"roof_area": {"100"}, "rainfall": {"-5"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rainfall", body["field"])
}
