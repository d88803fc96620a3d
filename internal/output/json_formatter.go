package output

import (
	"encoding/json"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// JSONFormatter serializes the regime comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.RegimeComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
