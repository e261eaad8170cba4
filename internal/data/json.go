package data

import (
	"encoding/json"
	"os"

	"office-pricing/internal/model"
)

// LoadExportJSON reads a saved analytics export from disk. Used by the sync
// command's --file mode and by tests; the shape matches the provider
// responses exactly.
func LoadExportJSON(path string) (*model.AnalyticsExportResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.AnalyticsExportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
