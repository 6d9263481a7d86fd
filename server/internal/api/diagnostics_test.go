package api

import (
	"testing"

	"github.com/supplylens/supplylens/pkg/types"
)

func keys(hints []DiagnosticHint) map[string]string {
	out := make(map[string]string, len(hints))
	for _, h := range hints {
		out[h.Key] = h.Level
	}
	return out
}

func TestComputeDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		m    types.SupplierMetrics
		fc   *types.SupplierForecast
		want map[string]string
	}{
		{
			name: "no shipments short-circuits",
			m:    types.SupplierMetrics{SupplierID: "S"},
			fc:   &types.SupplierForecast{RiskLevel: types.RiskHigh},
			want: map[string]string{"no_shipments": "info"},
		},
		{
			name: "healthy supplier",
			m:    types.SupplierMetrics{TotalOrders: 10, OnTimeDelivery: 96, DefectRate: 0.5},
			fc:   &types.SupplierForecast{RiskLevel: types.RiskLow, Trend: types.TrendStable},
			want: map[string]string{"healthy": "ok"},
		},
		{
			name: "between good and excellent warns",
			m:    types.SupplierMetrics{TotalOrders: 10, OnTimeDelivery: 85, DefectRate: 2},
			want: map[string]string{"on_time": "warning", "defect_rate": "warning"},
		},
		{
			name: "poor supplier with risky outlook",
			m:    types.SupplierMetrics{TotalOrders: 10, OnTimeDelivery: 60, DefectRate: 5},
			fc:   &types.SupplierForecast{RiskLevel: types.RiskHigh, Trend: types.TrendDeclining, PredictedPerformance: 58},
			want: map[string]string{
				"on_time":         "critical",
				"defect_rate":     "critical",
				"forecast_risk":   "warning",
				"trend_declining": "info",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := keys(computeDiagnostics(tc.m, tc.fc))
			if len(got) != len(tc.want) {
				t.Fatalf("hints: got %v, want %v", got, tc.want)
			}
			for k, level := range tc.want {
				if got[k] != level {
					t.Errorf("%s: got %q, want %q", k, got[k], level)
				}
			}
		})
	}
}

func TestComputeDiagnostics_LateCount(t *testing.T) {
	hints := computeDiagnostics(types.SupplierMetrics{TotalOrders: 20, OnTimeDelivery: 75, DefectRate: 0}, nil)
	if len(hints) != 1 || hints[0].Key != "on_time" {
		t.Fatalf("hints: got %+v", hints)
	}
	want := "5 of 20 shipments arrived after their scheduled date."
	if got := hints[0].Detail[:len(want)]; got != want {
		t.Errorf("detail: got %q, want prefix %q", got, want)
	}
	if hints[0].Value == nil || *hints[0].Value != 75 {
		t.Errorf("value: got %v", hints[0].Value)
	}
}

func TestStateFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, "healthy"}, {8, "healthy"}, {7.9, "degraded"}, {6, "degraded"}, {5.9, "critical"}, {-3, "critical"},
	}
	for _, tc := range cases {
		if got := stateFromScore(tc.score); got != tc.want {
			t.Errorf("stateFromScore(%v): got %q, want %q", tc.score, got, tc.want)
		}
	}
}
