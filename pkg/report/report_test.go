package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/supplylens/supplylens/pkg/types"
)

func TestWriteSuppliersCSV(t *testing.T) {
	metrics := []types.SupplierMetrics{
		{SupplierID: "SUP001", Name: "Acme, Inc.", Region: "europe", OnTimeDelivery: 95, DefectRate: 1.25,
			TotalOrders: 20, TotalValue: 10000.5, Status: types.StatusExcellent, Rating: 4.8},
	}
	var buf bytes.Buffer
	if err := WriteSuppliersCSV(&buf, metrics); err != nil {
		t.Fatalf("WriteSuppliersCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	if lines[0] != "supplier_id,name,region,onTimeDelivery,defectRate,totalOrders,totalValue,status,rating" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != `SUP001,"Acme, Inc.",europe,95,1.25,20,10000.5,excellent,4.8` {
		t.Errorf("row: got %q", lines[1])
	}
}

func TestWriteSuppliersCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSuppliersCSV(&buf, nil); err != nil {
		t.Fatalf("WriteSuppliersCSV: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("want header only, got %q", buf.String())
	}
}

func TestWriteInventoryCSV(t *testing.T) {
	points := []types.InventoryPoint{{Month: "Jan", Turnover: 5.4, Demand: 1200, StockLevel: 15320}}
	var buf bytes.Buffer
	if err := WriteInventoryCSV(&buf, points); err != nil {
		t.Fatalf("WriteInventoryCSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(recs) != 2 || recs[1][0] != "Jan" || recs[1][3] != "15320" {
		t.Errorf("records: got %v", recs)
	}
}

func TestWriteText(t *testing.T) {
	f := Forecasts{
		OnTime:    []types.ForecastData{{Month: "Month 1", Predicted: 91.8, UpperBound: 101.6, LowerBound: 82}},
		Inventory: []types.ForecastData{{Month: "Month 1", Predicted: 6.8, UpperBound: 8.2, LowerBound: 5.4}},
		Suppliers: []types.SupplierForecast{
			{SupplierName: "Gamma", CurrentPerformance: 70, PredictedPerformance: 67.2, RiskLevel: types.RiskHigh},
			{SupplierName: "Alpha", CurrentPerformance: 95, PredictedPerformance: 97, RiskLevel: types.RiskLow},
		},
		Insights: []types.ForecastInsight{
			{Title: "1 Suppliers at High Risk", Impact: types.ImpactHigh, Confidence: 87,
				Description: "Gamma are predicted to have delivery rates below 80% next month.",
				Recommendation: "Initiate contingency planning", Timeframe: "Next 30 days"},
		},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, f, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"SUPPLY CHAIN PREDICTIVE ANALYTICS REPORT",
		"Generated: 2024-06-01",
		"- Month 1: 91.8% (Range: 82% - 101.6%)",
		"- Month 1: 6.8x (Range: 5.4x - 8.2x)",
		"- Gamma: Current 70% → Predicted 67.2%",
		"1. 1 Suppliers at High Risk (HIGH IMPACT)",
		"   Confidence: 87%",
		"   Timeline: Next 30 days",
		"5. Schedule quarterly forecast reviews to track prediction accuracy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "Alpha: Current") {
		t.Error("low-risk supplier listed under high risk")
	}
}

func TestWriteText_NoHighRisk(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, Forecasts{}, time.Now()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "High Risk Suppliers:\nNone identified") {
		t.Errorf("missing 'None identified':\n%s", buf.String())
	}
}
