package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
	"github.com/supplylens/supplylens/server/internal/store"
)

type recorder struct {
	mu   sync.Mutex
	seen []*types.Dashboard
}

func (r *recorder) Evaluate(d *types.Dashboard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, d)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func testDataset(suppliers int) *types.Dataset {
	ds := &types.Dataset{}
	for i := 0; i < suppliers; i++ {
		id := fmt.Sprintf("SUP%03d", i+1)
		region := "europe"
		if i%2 == 1 {
			region = "asia-pacific"
		}
		ds.Suppliers = append(ds.Suppliers, types.Supplier{SupplierID: id, Name: "Supplier " + id, Region: region})
		for j := 0; j < 10; j++ {
			actual := "2024-03-10"
			if j < i {
				actual = "2024-03-12"
			}
			ds.Shipments = append(ds.Shipments, types.Shipment{
				ShipmentID: fmt.Sprintf("%s-%d", id, j), SupplierID: id, Region: region,
				ProductCategory: "electronics", ScheduledDelivery: "2024-03-10", ActualDelivery: actual,
				QuantityDelivered: 100, DefectCount: float64(i), Cost: 250,
			})
		}
	}
	ds.Inventory = []types.InventoryItem{{ProductID: "P1", CurrentStock: 100,
		TurnoverRate: []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}, MonthlyDemand: make([]float64, 12)}}
	return ds
}

func TestBuild_AssemblesEverySection(t *testing.T) {
	rec := &recorder{}
	svc := New(testDataset(10), randsrc.New(1), nil, rec)

	d, err := svc.Build(context.Background(), types.FilterOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.ID == "" {
		t.Error("ID is empty")
	}
	if len(d.Suppliers) != 10 {
		t.Errorf("Suppliers: got %d, want 10", len(d.Suppliers))
	}
	if len(d.InventoryTrend) != 12 {
		t.Errorf("InventoryTrend: got %d, want 12", len(d.InventoryTrend))
	}
	if len(d.OnTimeForecast) != 3 || len(d.InventoryForecast) != 3 {
		t.Errorf("forecasts: got %d/%d, want 3/3", len(d.OnTimeForecast), len(d.InventoryForecast))
	}
	if len(d.SupplierForecasts) != 8 {
		t.Errorf("SupplierForecasts: got %d, want 8", len(d.SupplierForecasts))
	}
	if len(d.Benchmarks) != 20 {
		t.Errorf("Benchmarks: got %d, want 20", len(d.Benchmarks))
	}
	if d.Insights == nil || len(d.Recommendations) != 4 {
		t.Errorf("insights/recommendations: got %v/%d", d.Insights, len(d.Recommendations))
	}
	if d.KPIs.InventoryTurnover != 5 {
		t.Errorf("KPIs.InventoryTurnover: got %v, want 5", d.KPIs.InventoryTurnover)
	}
	if rec.count() != 1 {
		t.Errorf("alerts evaluated %d times, want 1", rec.count())
	}
}

func TestBuild_UsesCache(t *testing.T) {
	rec := &recorder{}
	svc := New(testDataset(3), randsrc.New(1), store.New(time.Minute), rec)
	ctx := context.Background()

	first, err := svc.Build(ctx, types.FilterOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := svc.Build(ctx, types.FilterOptions{Region: types.AllRegions})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("equivalent filters produced distinct dashboards %s / %s", first.ID, second.ID)
	}
	if rec.count() != 1 {
		t.Errorf("alerts evaluated %d times, want 1 (cache hit skips evaluation)", rec.count())
	}

	eu, err := svc.Build(ctx, types.FilterOptions{Region: "europe"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if eu.ID == first.ID {
		t.Error("different filters shared a cached dashboard")
	}
}

func TestReload_SwapsDatasetAndPurgesCache(t *testing.T) {
	cache := store.New(time.Minute)
	svc := New(testDataset(3), randsrc.New(1), cache, nil)
	ctx := context.Background()

	before, _ := svc.Build(ctx, types.FilterOptions{})
	svc.Reload(testDataset(5))

	if cache.Count() != 0 {
		t.Errorf("cache after reload: got %d entries, want 0", cache.Count())
	}
	after, err := svc.Build(ctx, types.FilterOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(before.Suppliers) != 3 || len(after.Suppliers) != 5 {
		t.Errorf("suppliers before/after: got %d/%d, want 3/5", len(before.Suppliers), len(after.Suppliers))
	}
	if len(svc.Dataset().Suppliers) != 5 {
		t.Errorf("Dataset(): got %d suppliers, want 5", len(svc.Dataset().Suppliers))
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	svc := New(testDataset(3), randsrc.New(1), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Build(ctx, types.FilterOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Build on cancelled ctx: got %v, want context.Canceled", err)
	}
}

func TestBuild_ConcurrentWithReload(t *testing.T) {
	svc := New(testDataset(4), randsrc.New(1), store.New(time.Minute), nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.Build(context.Background(), types.FilterOptions{}); err != nil {
				t.Errorf("Build: %v", err)
			}
		}()
		go func(n int) {
			defer wg.Done()
			svc.Reload(testDataset(2 + n%3))
		}(i)
	}
	wg.Wait()
}
