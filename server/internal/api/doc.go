// Package api implements the HTTP REST API for supplylens-server.
//
// New(service, alerts) returns an http.Handler that serves:
//
//	GET /api/v1/health                 health score, state, dataset size
//	GET /api/v1/dashboard              every section below in one document
//	GET /api/v1/suppliers              per-supplier metrics
//	GET /api/v1/suppliers/{id}         one supplier with forecast, benchmarks, diagnostics
//	GET /api/v1/kpis                   aggregate KPIs
//	GET /api/v1/inventory/trend        twelve-month inventory trend
//	GET /api/v1/forecasts/on-time      three-period on-time delivery forecast
//	GET /api/v1/forecasts/inventory    three-period inventory turnover forecast
//	GET /api/v1/forecasts/suppliers    per-supplier outlook
//	GET /api/v1/benchmarks             population benchmarks
//	GET /api/v1/insights               rule-based insights
//	GET /api/v1/recommendations        KPI-driven action items
//	GET /api/v1/alerts                 firing and recently resolved alerts
//	GET /api/v1/export/suppliers.csv   supplier metrics as CSV
//	GET /api/v1/export/inventory.csv   inventory trend as CSV
//	GET /api/v1/report                 plain-text forecast report
//
// Every dashboard endpoint accepts the filters ?region=, ?supplier=,
// ?category= and ?period=. All endpoints return 405 for non-GET methods.
//
// No external HTTP framework is used.
package api
