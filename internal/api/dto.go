package api

import (
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse reports liveness and the active configuration.
type HealthResponse struct {
	Status      string   `json:"status"`
	DefaultYear string   `json:"default_year"`
	Years       []string `json:"years"`
	Cache       string   `json:"cache"`
	GSTReform   string   `json:"gst_reform_date"`
}

// RulesListResponse lists the registered assessment years.
type RulesListResponse struct {
	DefaultYear string   `json:"default_year"`
	Years       []string `json:"years"`
}

// CompareResponse wraps a regime comparison.
type CompareResponse struct {
	CalculationID string `json:"calculation_id"`
	domain.RegimeComparison
}

// BatchCompareRequest compares several salary profiles under one rule book.
type BatchCompareRequest struct {
	AssessmentYear string             `json:"assessment_year,omitempty"`
	Inputs         []domain.TaxInputs `json:"inputs"`
}

// BatchCompareResponse keeps results in request order.
type BatchCompareResponse struct {
	CalculationID  string                    `json:"calculation_id"`
	AssessmentYear string                    `json:"assessment_year"`
	Results        []domain.RegimeComparison `json:"results"`
}

// RegimeResponse wraps a single-regime calculation.
type RegimeResponse struct {
	CalculationID string `json:"calculation_id"`
	domain.TaxResults
}

// GSTResponse wraps a GST time-of-supply resolution.
type GSTResponse struct {
	CalculationID string `json:"calculation_id"`
	domain.GSTResult
}
