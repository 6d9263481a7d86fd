package promexport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/supplylens/supplylens/pkg/types"
)

const (
	namespace    = "supplylens_"
	buildTimeout = 5 * time.Second
)

// Builder produces the dashboard for a filter set. dashboard.Service
// satisfies it.
type Builder interface {
	Build(ctx context.Context, f types.FilterOptions) (*types.Dashboard, error)
}

// Handler returns the /metrics handler. firing may be nil.
func Handler(b Builder, firing func() int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), buildTimeout)
		defer cancel()

		d, err := b.Build(ctx, types.FilterOptions{})
		if err != nil {
			slog.Error("promexport: build dashboard", "err", err)
			http.Error(w, "failed to compute dashboard", http.StatusInternalServerError)
			return
		}
		n := -1
		if firing != nil {
			n = firing()
		}

		format := expfmt.Negotiate(r.Header)
		w.Header().Set("Content-Type", string(format))
		enc := expfmt.NewEncoder(w, format)
		for _, mf := range Families(d, n) {
			if err := enc.Encode(mf); err != nil {
				slog.Warn("promexport: encode", "family", mf.GetName(), "err", err)
				return
			}
		}
		if c, ok := enc.(expfmt.Closer); ok {
			c.Close() //nolint:errcheck
		}
	})
}

// Families converts d into metric families. The alerts family is omitted
// when firing is negative.
func Families(d *types.Dashboard, firing int) []*dto.MetricFamily {
	k := d.KPIs
	out := []*dto.MetricFamily{
		single("health_score", "Supply chain health score (0-10, may go negative).", k.HealthScore),
		single("average_on_time_percent", "Mean on-time delivery rate across suppliers.", k.AverageOnTimeDelivery),
		single("inventory_turnover", "Mean monthly inventory turnover across products.", k.InventoryTurnover),
		single("underperforming_suppliers", "Suppliers rated poor.", float64(k.UnderperformingSuppliers)),
		single("cost_savings", "Estimated savings from replacing poor suppliers.", k.TotalCostSavings),
	}

	onTime := family("supplier_on_time_percent", "On-time delivery rate per supplier.")
	defects := family("supplier_defect_rate_percent", "Defective units per delivered unit, per supplier.")
	orders := family("supplier_orders", "Shipments per supplier.")
	value := family("supplier_value", "Total shipment cost per supplier.")
	for _, m := range d.Suppliers {
		labels := pairs(
			"supplier_id", m.SupplierID,
			"name", m.Name,
			"region", m.Region,
			"status", string(m.Status),
		)
		onTime.Metric = append(onTime.Metric, gauge(m.OnTimeDelivery, labels))
		defects.Metric = append(defects.Metric, gauge(m.DefectRate, labels))
		orders.Metric = append(orders.Metric, gauge(float64(m.TotalOrders), labels))
		value.Metric = append(value.Metric, gauge(m.TotalValue, labels))
	}

	predicted := family("supplier_predicted_on_time_percent", "Next-period on-time forecast per supplier.")
	for _, fc := range d.SupplierForecasts {
		predicted.Metric = append(predicted.Metric, gauge(fc.PredictedPerformance, pairs(
			"supplier_id", fc.SupplierID,
			"trend", string(fc.Trend),
			"risk", string(fc.RiskLevel),
		)))
	}

	for _, mf := range []*dto.MetricFamily{onTime, defects, orders, value, predicted} {
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	if firing >= 0 {
		out = append(out, single("alerts_firing", "Alerts currently firing.", float64(firing)))
	}
	return out
}

// --- helpers ----------------------------------------------------------------

func family(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(namespace + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func single(name, help string, v float64) *dto.MetricFamily {
	mf := family(name, help)
	mf.Metric = []*dto.Metric{gauge(v, nil)}
	return mf
}

func gauge(v float64, labels []*dto.LabelPair) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

// pairs builds label pairs from alternating name/value arguments.
func pairs(kv ...string) []*dto.LabelPair {
	out := make([]*dto.LabelPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, &dto.LabelPair{Name: proto.String(kv[i]), Value: proto.String(kv[i+1])})
	}
	return out
}
