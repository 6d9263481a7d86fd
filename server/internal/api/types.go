package api

import (
	"time"

	"github.com/supplylens/supplylens/pkg/types"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State           string    `json:"state"` // healthy | degraded | critical
	HealthScore     float64   `json:"health_score"`
	SupplierCount   int       `json:"supplier_count"`
	ShipmentCount   int       `json:"shipment_count"`
	InventoryCount  int       `json:"inventory_count"`
	AlertCount      int       `json:"alert_count"`
	DatasetLoadedAt time.Time `json:"dataset_loaded_at"`
}

// SupplierResponse is the payload for GET /api/v1/suppliers/{id}.
type SupplierResponse struct {
	Metrics     types.SupplierMetrics   `json:"metrics"`
	Forecast    *types.SupplierForecast `json:"forecast,omitempty"`
	Benchmarks  []types.BenchmarkData   `json:"benchmarks"`
	Diagnostics []DiagnosticHint        `json:"diagnostics"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
