package compute

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
)

// months labels the twelve points of the inventory trend.
var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Stock-level jitter bounds: stock × (1 + U[-0.2, 0.2)).
const (
	jitterSpan   = 0.4
	jitterOffset = 0.2
)

// dateLayouts are tried in order when parsing shipment dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Engine computes supplier metrics and KPIs over a fixed Dataset.
//
// Engine holds no mutable state and is safe for concurrent use provided the
// random source is.
type Engine struct {
	ds  *types.Dataset
	rnd randsrc.Source
}

// NewEngine returns an Engine over ds. ds must not be modified afterwards.
// A nil rnd falls back to a time-seeded source.
func NewEngine(ds *types.Dataset, rnd randsrc.Source) *Engine {
	if ds == nil {
		ds = &types.Dataset{}
	}
	if rnd == nil {
		rnd = randsrc.New(0)
	}
	return &Engine{ds: ds, rnd: rnd}
}

// Dataset returns the dataset the engine was built with.
func (e *Engine) Dataset() *types.Dataset { return e.ds }

// FilterShipments returns the shipments matching every active filter
// dimension (region, supplier, product category). TimePeriod is ignored.
func FilterShipments(shipments []types.Shipment, f types.FilterOptions) []types.Shipment {
	out := make([]types.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if types.Active(f.Region) && s.Region != f.Region {
			continue
		}
		if types.Active(f.Supplier) && s.SupplierID != f.Supplier {
			continue
		}
		if types.Active(f.ProductCategory) && s.ProductCategory != f.ProductCategory {
			continue
		}
		out = append(out, s)
	}
	return out
}

// tally accumulates raw counts for one supplier.
type tally struct {
	onTime    int
	orders    int
	defects   float64
	delivered float64
	value     decimal.Decimal
}

// SupplierMetrics aggregates the filtered shipments into exactly one entry
// per directory supplier, sorted by on-time delivery descending. Suppliers
// with equal rates keep directory order.
func (e *Engine) SupplierMetrics(f types.FilterOptions) []types.SupplierMetrics {
	if types.Active(f.TimePeriod) {
		slog.Debug("compute: time period filter is not applied", "time_period", f.TimePeriod)
	}
	shipments := FilterShipments(e.ds.Shipments, f)

	tallies := make(map[string]*tally, len(e.ds.Suppliers))
	for _, sup := range e.ds.Suppliers {
		tallies[sup.SupplierID] = &tally{}
	}

	for _, s := range shipments {
		t, ok := tallies[s.SupplierID]
		if !ok {
			continue // shipment from a supplier outside the directory
		}
		t.orders++
		t.defects += s.DefectCount
		t.delivered += s.QuantityDelivered
		t.value = t.value.Add(decimal.NewFromFloat(s.Cost))
		if onTime(s) {
			t.onTime++
		}
	}

	out := make([]types.SupplierMetrics, 0, len(e.ds.Suppliers))
	for _, sup := range e.ds.Suppliers {
		t := tallies[sup.SupplierID]
		otd := percent(float64(t.onTime), float64(t.orders))
		defect := percent(t.defects, t.delivered)
		out = append(out, types.SupplierMetrics{
			SupplierID:     sup.SupplierID,
			Name:           sup.Name,
			Region:         sup.Region,
			OnTimeDelivery: otd,
			DefectRate:     defect,
			TotalOrders:    t.orders,
			TotalValue:     t.value.InexactFloat64(),
			Status:         StatusFor(otd, defect),
			Rating:         sup.Rating,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OnTimeDelivery > out[j].OnTimeDelivery
	})
	return out
}

// KPIs computes the aggregate KPIs for filter set f.
func (e *Engine) KPIs(f types.FilterOptions) types.KPIMetrics {
	return e.KPIsFrom(e.SupplierMetrics(f))
}

// KPIsFrom derives the KPIs from already computed supplier metrics. Inventory
// turnover comes from the inventory dataset and ignores filters.
func (e *Engine) KPIsFrom(metrics []types.SupplierMetrics) types.KPIMetrics {
	rates := make([]float64, 0, len(metrics))
	var poor int
	savings := decimal.Zero
	rate := decimal.NewFromFloat(savingsRate)
	for _, m := range metrics {
		rates = append(rates, m.OnTimeDelivery)
		if m.Status == types.StatusPoor {
			poor++
			savings = savings.Add(decimal.NewFromFloat(m.TotalValue).Mul(rate))
		}
	}
	avg := mean(rates)

	return types.KPIMetrics{
		AverageOnTimeDelivery:    RoundTo(avg, 1),
		InventoryTurnover:        RoundTo(e.inventoryTurnover(), 1),
		UnderperformingSuppliers: poor,
		TotalCostSavings:         savings.Round(0).InexactFloat64(),
		HealthScore:              RoundTo(HealthScore(avg, poor), 1),
	}
}

// inventoryTurnover is the mean, across items, of each item's mean monthly
// turnover rate.
func (e *Engine) inventoryTurnover() float64 {
	perItem := make([]float64, 0, len(e.ds.Inventory))
	for _, item := range e.ds.Inventory {
		perItem = append(perItem, mean(item.TurnoverRate))
	}
	return mean(perItem)
}

// InventoryTrend returns twelve calendar-month points. StockLevel is the
// total current stock scaled by a random multiplier in [0.8, 1.2); it is
// display noise, not a forecast.
func (e *Engine) InventoryTrend() []types.InventoryPoint {
	var totalStock float64
	for _, item := range e.ds.Inventory {
		totalStock += item.CurrentStock
	}

	out := make([]types.InventoryPoint, 0, len(months))
	for i, month := range months {
		var demand float64
		turnover := make([]float64, 0, len(e.ds.Inventory))
		for _, item := range e.ds.Inventory {
			demand += at(item.MonthlyDemand, i)
			turnover = append(turnover, at(item.TurnoverRate, i))
		}
		jitter := 1 + (e.rnd.Float64()*jitterSpan - jitterOffset)
		out = append(out, types.InventoryPoint{
			Month:      month,
			Turnover:   RoundTo(mean(turnover), 1),
			Demand:     demand,
			StockLevel: RoundTo(totalStock*jitter, 0),
		})
	}
	return out
}

// onTime reports whether s was delivered at or before its scheduled date.
// An unparseable date on either side counts as late.
func onTime(s types.Shipment) bool {
	actual, ok := ParseDate(s.ActualDelivery)
	if !ok {
		return false
	}
	scheduled, ok := ParseDate(s.ScheduledDelivery)
	if !ok {
		return false
	}
	return !actual.After(scheduled)
}

// ParseDate parses a dataset date in any of the accepted layouts.
func ParseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// at returns vs[i], or 0 when the series is too short.
func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return 0
}
