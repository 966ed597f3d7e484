package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpgo/investment-calculator/internal/cache"
	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() *config.Settings {
	return &config.Settings{
		ListenAddr:      "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RateLimit:       config.RateLimitSettings{Requests: 100, Window: time.Minute},
	}
}

func newTestServer(t *testing.T, settings *config.Settings) *Server {
	t.Helper()
	handlers := NewHandlers(calculation.NewProjectionEngine(), cache.NewProjections(cache.NewMemoryCache(0), nil), nil)
	s := New(settings, handlers, nil)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestProjectionOK(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()

	w := do(t, h, http.MethodPost, "/api/v1/projection",
		`{"amount": 1000, "frequency": "monthly", "rate": 7, "inflation": 3, "years": 1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 12000, result.TotalInvested, 1e-9)
	assert.InDelta(t, 12392.585289640438, result.FutureValueNominal, 1e-6)
	assert.InDelta(t, 12215.91322114373, result.FutureValueReal, 1e-6)
	assert.Len(t, result.Timeline, 2)
}

func TestProjectionCachedResponseIsIdentical(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	body := `{"amount": 250, "frequency": "bi-weekly", "rate": 6, "inflation": 2.5, "years": 30}`

	first := do(t, h, http.MethodPost, "/api/v1/projection", body)
	second := do(t, h, http.MethodPost, "/api/v1/projection", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestProjectionDefaultsToMonthly(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	w := do(t, h, http.MethodPost, "/api/v1/projection", `{"amount": 100, "rate": 5, "inflation": 2, "years": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 1200, result.YearlyTotal, 1e-9)
}

func TestProjectionValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"missing amount", `{"frequency": "weekly", "rate": 7, "inflation": 3, "years": 10}`, http.StatusBadRequest, calculation.MsgInvalidInput},
		{"missing years", `{"amount": 10, "rate": 7, "inflation": 3}`, http.StatusBadRequest, calculation.MsgInvalidInput},
		{"inflation 100%", `{"amount": 10, "rate": 7, "inflation": 100, "years": 10}`, http.StatusBadRequest, calculation.MsgInflationTooHigh},
		{"zero return", `{"amount": 10, "rate": 0, "inflation": 3, "years": 10}`, http.StatusBadRequest, calculation.MsgReturnNotPositive},
		{"order: inflation before return", `{"amount": 10, "rate": -1, "inflation": 150, "years": 10}`, http.StatusBadRequest, calculation.MsgInflationTooHigh},
		{"unknown frequency", `{"amount": 10, "frequency": "daily", "rate": 7, "inflation": 3, "years": 10}`, http.StatusBadRequest, `unknown contribution frequency "daily"`},
		{"too many years", `{"amount": 10, "rate": 7, "inflation": 3, "years": 101}`, http.StatusBadRequest, "years must be between 0 and 100"},
		{"engine rule before horizon cap", `{"amount": 100, "rate": 7, "inflation": 150, "years": 150}`, http.StatusBadRequest, calculation.MsgInflationTooHigh},
		{"return rule before negative years", `{"amount": 100, "rate": 0, "inflation": 3, "years": -1}`, http.StatusBadRequest, calculation.MsgReturnNotPositive},
		{"malformed json", `{"amount": "ten"}`, http.StatusBadRequest, "invalid request body"},
	}
	h := newTestServer(t, testSettings()).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/projection", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, decodeError(t, w), tt.msg)
		})
	}
}

func TestProjectionOverflowIsUnprocessable(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	w := do(t, h, http.MethodPost, "/api/v1/projection", `{"amount": 1e300, "frequency": "weekly", "rate": 1e6, "inflation": 0, "years": 100}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	for _, path := range []string{"/api/v1/projection", "/api/v1/scenarios"} {
		w := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, path)
		assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	}
	w := do(t, h, http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestScenariosOK(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	body := `{"scenarios": [
		{"name": "A", "contribution_amount": 1000, "contribution_frequency": "monthly", "nominal_annual_rate": 0.07, "annual_inflation_rate": 0.03, "years": 1},
		{"name": "B", "contribution_amount": 500, "contribution_frequency": "fortnightly", "nominal_annual_rate": 0.06, "annual_inflation_rate": 0.02, "years": 2}
	]}`
	w := do(t, h, http.MethodPost, "/api/v1/scenarios", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	require.Len(t, cmp.Scenarios, 2)
	assert.Equal(t, "A", cmp.Scenarios[0].Name)
	assert.Equal(t, domain.Biweekly, cmp.Scenarios[1].Parameters.ContributionFrequency)
	assert.Equal(t, "B", cmp.Recommendation.BestRealValueScenario)
	assert.NotEmpty(t, cmp.Assumptions)
}

func TestScenariosValidation(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()

	w := do(t, h, http.MethodPost, "/api/v1/scenarios", `{"scenarios": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "no scenarios provided")

	w = do(t, h, http.MethodPost, "/api/v1/scenarios", `{"scenarios": [
		{"name": "A", "contribution_amount": 10, "contribution_frequency": "monthly", "nominal_annual_rate": 0.07, "annual_inflation_rate": 1.5, "years": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), calculation.MsgInflationTooHigh)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, testSettings()).Handler()
	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRateLimitReturns429(t *testing.T) {
	settings := testSettings()
	settings.RateLimit.Requests = 2
	h := newTestServer(t, settings).Handler()
	body := `{"amount": 10, "rate": 7, "inflation": 3, "years": 1}`

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/projection", body).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/projection", body).Code)
	w := do(t, h, http.MethodPost, "/api/v1/projection", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate limit exceeded", decodeError(t, w))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// health checks are not rate limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}
