package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/supplylens/supplylens/pkg/report"
	"github.com/supplylens/supplylens/pkg/types"
	"github.com/supplylens/supplylens/server/internal/alerts"
	"github.com/supplylens/supplylens/server/internal/dashboard"
)

// AlertSource lists active and recently resolved alerts.
type AlertSource interface {
	Active() []*alerts.Alert
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It builds dashboards through the dashboard service and returns JSON.
type Handler struct {
	svc    *dashboard.Service
	alerts AlertSource
	mux    *http.ServeMux
}

// New creates a Handler wired to the given dashboard service and registers
// all routes. al may be nil, in which case /alerts is always empty.
func New(svc *dashboard.Service, al AlertSource) http.Handler {
	h := &Handler{svc: svc, alerts: al, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/dashboard", h.section(func(d *types.Dashboard) any { return d }))
	h.mux.HandleFunc("/api/v1/suppliers", h.section(func(d *types.Dashboard) any { return d.Suppliers }))
	h.mux.HandleFunc("/api/v1/suppliers/", h.getSupplier) // subtree, extracts {id}
	h.mux.HandleFunc("/api/v1/kpis", h.section(func(d *types.Dashboard) any { return d.KPIs }))
	h.mux.HandleFunc("/api/v1/inventory/trend", h.section(func(d *types.Dashboard) any { return d.InventoryTrend }))
	h.mux.HandleFunc("/api/v1/forecasts/on-time", h.section(func(d *types.Dashboard) any { return d.OnTimeForecast }))
	h.mux.HandleFunc("/api/v1/forecasts/inventory", h.section(func(d *types.Dashboard) any { return d.InventoryForecast }))
	h.mux.HandleFunc("/api/v1/forecasts/suppliers", h.section(func(d *types.Dashboard) any { return d.SupplierForecasts }))
	h.mux.HandleFunc("/api/v1/benchmarks", h.section(func(d *types.Dashboard) any { return d.Benchmarks }))
	h.mux.HandleFunc("/api/v1/insights", h.section(func(d *types.Dashboard) any { return d.Insights }))
	h.mux.HandleFunc("/api/v1/recommendations", h.section(func(d *types.Dashboard) any { return d.Recommendations }))
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)
	h.mux.HandleFunc("/api/v1/export/suppliers.csv", h.exportSuppliers)
	h.mux.HandleFunc("/api/v1/export/inventory.csv", h.exportInventory)
	h.mux.HandleFunc("/api/v1/report", h.report)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// FiltersFromQuery reads region, supplier, category and period query
// parameters. Missing parameters leave the dimension unconstrained.
func FiltersFromQuery(r *http.Request) types.FilterOptions {
	q := r.URL.Query()
	return types.FilterOptions{
		Region:          q.Get("region"),
		Supplier:        q.Get("supplier"),
		ProductCategory: q.Get("category"),
		TimePeriod:      q.Get("period"),
	}
}

// build enforces GET and returns the dashboard for the request's filters.
// On failure it has already written the response.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) (*types.Dashboard, bool) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}
	d, err := h.svc.Build(r.Context(), FiltersFromQuery(r))
	if err != nil {
		slog.Error("api: build dashboard", "path", r.URL.Path, "err", err)
		jsonErr(w, http.StatusInternalServerError, "failed to compute dashboard")
		return nil, false
	}
	return d, true
}

// section returns a handler serving one part of the dashboard as JSON.
func (h *Handler) section(pick func(*types.Dashboard) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := h.build(w, r)
		if !ok {
			return
		}
		jsonResp(w, http.StatusOK, pick(d))
	}
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: health score, state and dataset size.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	ds := h.svc.Dataset()
	resp := HealthResponse{
		State:           stateFromScore(d.KPIs.HealthScore),
		HealthScore:     d.KPIs.HealthScore,
		SupplierCount:   len(ds.Suppliers),
		ShipmentCount:   len(ds.Shipments),
		InventoryCount:  len(ds.Inventory),
		DatasetLoadedAt: h.svc.LoadedAt().UTC(),
	}
	if h.alerts != nil {
		for _, a := range h.alerts.Active() {
			if a.State == "firing" {
				resp.AlertCount++
			}
		}
	}
	jsonResp(w, http.StatusOK, resp)
}

// getSupplier returns GET /api/v1/suppliers/{id}: metrics, forecast,
// benchmarks and diagnostics for one supplier.
func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/suppliers/")
	if id == "" {
		h.section(func(d *types.Dashboard) any { return d.Suppliers })(w, r)
		return
	}

	d, ok := h.build(w, r)
	if !ok {
		return
	}

	var resp *SupplierResponse
	for _, m := range d.Suppliers {
		if m.SupplierID == id {
			resp = &SupplierResponse{Metrics: m, Benchmarks: []types.BenchmarkData{}}
			break
		}
	}
	if resp == nil {
		jsonErr(w, http.StatusNotFound, "supplier not found")
		return
	}
	for i := range d.SupplierForecasts {
		if d.SupplierForecasts[i].SupplierID == id {
			fc := d.SupplierForecasts[i]
			resp.Forecast = &fc
			break
		}
	}
	for _, b := range d.Benchmarks {
		if b.SupplierID == id {
			resp.Benchmarks = append(resp.Benchmarks, b)
		}
	}
	resp.Diagnostics = computeDiagnostics(resp.Metrics, resp.Forecast)
	jsonResp(w, http.StatusOK, resp)
}

// listAlerts returns GET /api/v1/alerts: firing and recently resolved alerts.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.alerts == nil {
		jsonResp(w, http.StatusOK, []*alerts.Alert{})
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// exportSuppliers returns GET /api/v1/export/suppliers.csv.
func (h *Handler) exportSuppliers(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WriteSuppliersCSV(&buf, d.Suppliers); err != nil {
		jsonErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "text/csv", "supplier-performance.csv", buf.Bytes())
}

// exportInventory returns GET /api/v1/export/inventory.csv.
func (h *Handler) exportInventory(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WriteInventoryCSV(&buf, d.InventoryTrend); err != nil {
		jsonErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "text/csv", "inventory-trend.csv", buf.Bytes())
}

// report returns GET /api/v1/report: the plain-text predictive analytics report.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := report.WriteText(&buf, report.Forecasts{
		OnTime:    d.OnTimeForecast,
		Inventory: d.InventoryForecast,
		Suppliers: d.SupplierForecasts,
		Insights:  d.Insights,
	}, d.GeneratedAt)
	if err != nil {
		jsonErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	name := "supply-chain-forecast-" + d.GeneratedAt.Format(time.DateOnly) + ".txt"
	attachment(w, "text/plain; charset=utf-8", name, buf.Bytes())
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

func attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

// stateFromScore converts a 0–10 health score to a state string.
func stateFromScore(score float64) string {
	switch {
	case score >= 8:
		return "healthy"
	case score >= 6:
		return "degraded"
	default:
		return "critical"
	}
}
