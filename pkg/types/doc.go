// Package types defines the shared Go types used by the engines, the server
// and the supplyctl CLI.
//
// Source records (Shipment, Supplier, InventoryItem) mirror the JSON dataset
// field names. Derived records (SupplierMetrics, KPIMetrics, ForecastData,
// SupplierForecast, BenchmarkData, ForecastInsight) are recomputed on every
// filter change and never mutated after they are returned.
package types
