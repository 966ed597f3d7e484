package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/rpgo/investment-calculator/internal/cache"
	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ProjectionRequest is the single-projection payload. Rates are percentages
// as a person would type them (7 means 7%). Absent numbers are treated as
// not-a-number and rejected by validation.
type ProjectionRequest struct {
	Amount    *float64 `json:"amount"`
	Frequency string   `json:"frequency"`
	Rate      *float64 `json:"rate"`
	Inflation *float64 `json:"inflation"`
	Years     *float64 `json:"years"`
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Parameters converts the request into engine input. Frequency defaults to monthly.
func (req ProjectionRequest) Parameters() (domain.InvestmentParameters, error) {
	freq := domain.Monthly
	if strings.TrimSpace(req.Frequency) != "" {
		f, err := domain.ParseFrequency(req.Frequency)
		if err != nil {
			return domain.InvestmentParameters{}, err
		}
		freq = f
	}
	params := domain.InvestmentParameters{
		ContributionAmount:    valueOrNaN(req.Amount),
		ContributionFrequency: freq,
		NominalAnnualRate:     valueOrNaN(req.Rate) / 100,
		AnnualInflationRate:   valueOrNaN(req.Inflation) / 100,
		Years:                 valueOrNaN(req.Years),
	}
	// engine rules first so their messages win; the horizon cap only applies to valid input
	if err := calculation.ValidateParameters(params); err != nil {
		return domain.InvestmentParameters{}, err
	}
	if params.Years < 0 || params.Years > config.MaxProjectionYears {
		return domain.InvestmentParameters{}, fmt.Errorf("years must be between 0 and %d", config.MaxProjectionYears)
	}
	return params, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes before writing the status. Values that cannot be encoded
// (an overflowed projection holds +Inf) are answered with 422.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusUnprocessableEntity
		data, _ = json.Marshal(errorResponse{Error: "result is too large to represent"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// Handlers serves the projection API.
type Handlers struct {
	engine      *calculation.ProjectionEngine
	parser      *config.InputParser
	projections *cache.Projections
	logger      *zap.Logger
}

func NewHandlers(engine *calculation.ProjectionEngine, projections *cache.Projections, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if projections == nil {
		projections = cache.NewProjections(cache.Nop{}, logger)
	}
	return &Handlers{
		engine:      engine,
		parser:      config.NewInputParser(),
		projections: projections,
		logger:      logger,
	}
}

// Projection handles POST /api/v1/projection.
func (h *Handlers) Projection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req ProjectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	params, err := req.Parameters()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if cached, ok := h.projections.Get(r.Context(), params); ok {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := h.engine.Compute(params)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.projections.Put(r.Context(), params, result)
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, http.StatusOK, result)
}

// Scenarios handles POST /api/v1/scenarios. Rates in the body are fractional.
func (h *Handlers) Scenarios(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var cfg domain.Configuration
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.parser.ValidateConfiguration(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := h.engine.RunScenarios(r.Context(), &cfg)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) writeEngineError(w http.ResponseWriter, err error) {
	if calculation.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("projection failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
