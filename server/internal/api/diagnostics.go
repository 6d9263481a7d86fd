package api

import (
	"fmt"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/types"
)

// DiagnosticHint is one human-readable finding about a supplier.
// The UI displays these as chips on the supplier card; clicking one shows
// Detail.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint (e.g. on-time %).
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives hints from a supplier's metrics and, when
// available, its forecast.
func computeDiagnostics(m types.SupplierMetrics, fc *types.SupplierForecast) []DiagnosticHint {
	var hints []DiagnosticHint

	// ── No data ──────────────────────────────────────────────────────────────
	if m.TotalOrders == 0 {
		return []DiagnosticHint{{
			Key:   "no_shipments",
			Level: "info",
			Title: "No shipments",
			Detail: "No shipments from this supplier match the current filters, so every " +
				"metric reads zero and the supplier is rated poor by default. " +
				"Widen the region or category filter to see its real performance.",
		}}
	}

	// ── Delivery reliability ─────────────────────────────────────────────────
	if m.OnTimeDelivery < compute.ExcellentOnTime {
		v := m.OnTimeDelivery
		late := m.TotalOrders - int(float64(m.TotalOrders)*m.OnTimeDelivery/100+0.5)
		level := "warning"
		if m.OnTimeDelivery < compute.GoodOnTime {
			level = "critical"
		}
		hints = append(hints, DiagnosticHint{
			Key:   "on_time",
			Level: level,
			Title: fmt.Sprintf("%.1f%% on time", m.OnTimeDelivery),
			Detail: fmt.Sprintf(
				"%d of %d shipments arrived after their scheduled date. "+
					"Suppliers need %.0f%% on time to rate good and %.0f%% to rate excellent.",
				late, m.TotalOrders, compute.GoodOnTime, compute.ExcellentOnTime,
			),
			Value: &v,
		})
	}

	// ── Quality ──────────────────────────────────────────────────────────────
	if m.DefectRate > compute.ExcellentDefect {
		v := m.DefectRate
		level := "warning"
		if m.DefectRate > compute.GoodDefect {
			level = "critical"
		}
		hints = append(hints, DiagnosticHint{
			Key:   "defect_rate",
			Level: level,
			Title: fmt.Sprintf("%.2f%% defects", m.DefectRate),
			Detail: fmt.Sprintf(
				"%.2f%% of delivered units were flagged defective. "+
					"Above %.1f%% a supplier cannot rate excellent; above %.1f%% it is rated poor.",
				m.DefectRate, compute.ExcellentDefect, compute.GoodDefect,
			),
			Value: &v,
		})
	}

	// ── Outlook ──────────────────────────────────────────────────────────────
	if fc != nil {
		if fc.RiskLevel == types.RiskHigh {
			v := fc.PredictedPerformance
			hints = append(hints, DiagnosticHint{
				Key:   "forecast_risk",
				Level: "warning",
				Title: "High delivery risk",
				Detail: fmt.Sprintf(
					"Next month's on-time rate is forecast at %.1f%% (currently %.1f%%). "+
						"Line up a backup supplier for critical orders.",
					fc.PredictedPerformance, fc.CurrentPerformance,
				),
				Value: &v,
			})
		}
		if fc.Trend == types.TrendDeclining {
			hints = append(hints, DiagnosticHint{
				Key:    "trend_declining",
				Level:  "info",
				Title:  "Declining trend",
				Detail: "Performance is trending down. Schedule a review before it affects ratings.",
			})
		}
	}

	// ── All clear ────────────────────────────────────────────────────────────
	if len(hints) == 0 {
		v := m.OnTimeDelivery
		hints = append(hints, DiagnosticHint{
			Key:   "healthy",
			Level: "ok",
			Title: "All clear",
			Detail: fmt.Sprintf(
				"%.1f%% of shipments on time with %.2f%% defects. No action needed.",
				m.OnTimeDelivery, m.DefectRate,
			),
			Value: &v,
		})
	}

	return hints
}
