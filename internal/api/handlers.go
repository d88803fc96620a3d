package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// maxBatchSize caps the number of profiles in one batch request.
const maxBatchSize = 500

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	Service *service.TaxService
	// CacheBackend is reported by the health endpoint.
	CacheBackend string
	Logger       calculation.Logger
}

// NewHandler creates a handler for svc.
func NewHandler(svc *service.TaxService) *Handler {
	return &Handler{Service: svc, CacheBackend: "disabled", Logger: calculation.NopLogger{}}
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		DefaultYear: h.Service.DefaultYear(),
		Years:       h.Service.Years(),
		Cache:       h.CacheBackend,
		GSTReform:   h.Service.GSTReformDate(),
	})
}

// ListRules returns the registered assessment years.
// GET /api/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RulesListResponse{
		DefaultYear: h.Service.DefaultYear(),
		Years:       h.Service.Years(),
	})
}

// GetRules returns one rule book.
// GET /api/rules/{year}
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Service.Rules(chi.URLParam(r, "year"))
	if err != nil {
		h.writeServiceError(w, "Failed to load rules", err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// Compare runs both regimes and recommends one.
// POST /api/tax/compare?year=AY2026-27
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var in domain.TaxInputs
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cmp, err := h.Service.Compare(r.Context(), r.URL.Query().Get("year"), in)
	if err != nil {
		h.writeServiceError(w, "Failed to compare regimes", err)
		return
	}
	writeJSON(w, http.StatusOK, CompareResponse{CalculationID: uuid.NewString(), RegimeComparison: cmp})
}

// CompareBatch compares several profiles at once.
// POST /api/tax/compare/batch
func (h *Handler) CompareBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchCompareRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Inputs) == 0 {
		writeError(w, http.StatusBadRequest, "inputs must not be empty", nil)
		return
	}
	if len(req.Inputs) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d inputs per batch", maxBatchSize), nil)
		return
	}

	year := req.AssessmentYear
	if year == "" {
		year = r.URL.Query().Get("year")
	}
	results, err := h.Service.CompareBatch(r.Context(), year, req.Inputs)
	if err != nil {
		h.writeServiceError(w, "Failed to compare batch", err)
		return
	}
	resolved := h.Service.DefaultYear()
	if len(results) > 0 {
		resolved = results[0].AssessmentYear
	}
	writeJSON(w, http.StatusOK, BatchCompareResponse{
		CalculationID:  uuid.NewString(),
		AssessmentYear: resolved,
		Results:        results,
	})
}

// CalculateRegime computes tax under one regime.
// POST /api/tax/{regime}?year=AY2026-27
func (h *Handler) CalculateRegime(w http.ResponseWriter, r *http.Request) {
	regime, err := domain.ParseRegime(chi.URLParam(r, "regime"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown regime", err)
		return
	}

	var in domain.TaxInputs
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Service.Calculate(r.Context(), r.URL.Query().Get("year"), regime, in)
	if err != nil {
		h.writeServiceError(w, "Failed to calculate tax", err)
		return
	}
	writeJSON(w, http.StatusOK, RegimeResponse{CalculationID: uuid.NewString(), TaxResults: res})
}

// CalculateGST resolves the GST rate for a transaction.
// POST /api/gst/calculate
func (h *Handler) CalculateGST(w http.ResponseWriter, r *http.Request) {
	var tx domain.GSTTransaction
	if err := decodeBody(w, r, &tx); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Service.ComputeGST(r.Context(), tx)
	if err != nil {
		h.writeServiceError(w, "Failed to calculate GST", err)
		return
	}
	writeJSON(w, http.StatusOK, GSTResponse{CalculationID: uuid.NewString(), GSTResult: res})
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// writeServiceError maps domain errors onto HTTP status codes. Rule books are
// server configuration, so a ConfigError is a 500 here.
func (h *Handler) writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.Errorf("%s: %v", message, err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
