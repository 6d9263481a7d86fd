package compute

import (
	"strings"
	"testing"

	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
)

func TestRecommendations_Scenario(t *testing.T) {
	got := NewEngine(scenario(), randsrc.Fixed()).Recommendations(types.FilterOptions{})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	// savings 1500 → 0.9K and 0.6K, rounded.
	if got[0].Impact != "$1K annual savings" {
		t.Errorf("INS001 impact = %q", got[0].Impact)
	}
	if got[1].Title != "Gamma Performance Risk" {
		t.Errorf("INS002 title = %q", got[1].Title)
	}
	want := "Supplier showing declining performance with 70.0% on-time delivery. Consider alternative suppliers."
	if got[1].Description != want {
		t.Errorf("INS002 description = %q", got[1].Description)
	}
	if got[3].Impact != "$1K inventory optimization" {
		t.Errorf("INS004 impact = %q", got[3].Impact)
	}
}

func TestRecommendationsFrom_NoPoorSupplier(t *testing.T) {
	metrics := []types.SupplierMetrics{{Name: "Alpha", OnTimeDelivery: 95, Status: types.StatusExcellent}}
	got := RecommendationsFrom(metrics, types.KPIMetrics{})
	if got[1].Title != "Supplier Performance Risk" {
		t.Errorf("title = %q", got[1].Title)
	}
	if !strings.Contains(got[1].Description, "with 72% on-time delivery") {
		t.Errorf("description = %q", got[1].Description)
	}
	if got[0].Impact != "$0K annual savings" {
		t.Errorf("impact = %q", got[0].Impact)
	}
}

func TestRecommendationsFrom_NamesFirstPoorSupplier(t *testing.T) {
	metrics := []types.SupplierMetrics{
		{Name: "Alpha", OnTimeDelivery: 95, Status: types.StatusExcellent},
		{Name: "Beta", OnTimeDelivery: 65.3, Status: types.StatusPoor},
		{Name: "Gamma", OnTimeDelivery: 40, Status: types.StatusPoor},
	}
	got := RecommendationsFrom(metrics, types.KPIMetrics{})
	if got[1].Title != "Beta Performance Risk" {
		t.Errorf("title = %q", got[1].Title)
	}
	if !strings.Contains(got[1].Description, "with 65.3% on-time delivery") {
		t.Errorf("description = %q", got[1].Description)
	}
}
