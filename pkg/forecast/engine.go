package forecast

import (
	"fmt"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
)

// Seasonality multipliers applied to the three forecast periods.
var (
	onTimeSeasonality    = []float64{1.02, 0.98, 1.01}
	inventorySeasonality = []float64{1.1, 1.05, 0.95}
)

const (
	// inventoryBaseline is the assumed current turnover used as the seed of
	// the inventory forecast.
	inventoryBaseline = 6.2
	inventoryVariance = 0.5

	// maxSupplierForecasts caps Suppliers to the first N inputs.
	maxSupplierForecasts = 8
)

// Confidence ranges, as base + r × span with r in [0,1).
const (
	onTimeConfBase    = 85.0
	onTimeConfSpan    = 10.0
	inventoryConfBase = 82.0
	inventoryConfSpan = 12.0
	supplierConfBase  = 75.0
	supplierConfSpan  = 20.0
)

// Supplier outlook thresholds.
const (
	trendFactorBase = 0.95
	trendFactorSpan = 0.1
	improvingAbove  = 1.02
	decliningBelow  = 0.98
	lowRiskAbove    = 90.0
	mediumRiskAbove = 80.0
)

// Engine produces forecasts from supplier metrics. It is safe for concurrent
// use when its random source is.
type Engine struct {
	rnd randsrc.Source
}

// NewEngine returns an Engine drawing from rnd. A nil rnd falls back to a
// time-seeded source.
func NewEngine(rnd randsrc.Source) *Engine {
	if rnd == nil {
		rnd = randsrc.New(0)
	}
	return &Engine{rnd: rnd}
}

// periodLabel names forecast period i (zero based).
func periodLabel(i int) string {
	return fmt.Sprintf("Month %d", i+1)
}

// OnTimeDelivery forecasts the average on-time delivery rate for the next
// three periods. The cross-supplier average is used as a single seed value,
// so the projection is flat apart from seasonality; the spread across
// suppliers sets the confidence band.
func (e *Engine) OnTimeDelivery(metrics []types.SupplierMetrics) []types.ForecastData {
	rates := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		rates = append(rates, m.OnTimeDelivery)
	}
	avg := average(rates)
	variance := populationVariance(rates, avg)

	projected := LinearTrend([]float64{avg}, onTimeSeasonality)
	out := make([]types.ForecastData, 0, Periods)
	for i, predicted := range projected {
		upper, lower := ConfidenceInterval(predicted, variance)
		out = append(out, types.ForecastData{
			Month:      periodLabel(i),
			Predicted:  compute.RoundTo(predicted, 1),
			UpperBound: compute.RoundTo(upper, 1),
			LowerBound: compute.RoundTo(lower, 1),
			Confidence: onTimeConfBase + e.rnd.Float64()*onTimeConfSpan,
		})
	}
	return out
}

// InventoryTurnover forecasts inventory turnover from a fixed baseline.
func (e *Engine) InventoryTurnover() []types.ForecastData {
	out := make([]types.ForecastData, 0, Periods)
	for i := 0; i < Periods; i++ {
		predicted := inventoryBaseline * inventorySeasonality[i]
		upper, lower := ConfidenceInterval(predicted, inventoryVariance)
		out = append(out, types.ForecastData{
			Month:      periodLabel(i),
			Predicted:  compute.RoundTo(predicted, 1),
			UpperBound: compute.RoundTo(upper, 1),
			LowerBound: compute.RoundTo(lower, 1),
			Confidence: inventoryConfBase + e.rnd.Float64()*inventoryConfSpan,
		})
	}
	return out
}

// Suppliers returns a next-period outlook for the first eight suppliers in
// input order. Each prediction is the current rate scaled by a random trend
// factor in [0.95, 1.05).
func (e *Engine) Suppliers(metrics []types.SupplierMetrics) []types.SupplierForecast {
	if len(metrics) > maxSupplierForecasts {
		metrics = metrics[:maxSupplierForecasts]
	}
	out := make([]types.SupplierForecast, 0, len(metrics))
	for _, m := range metrics {
		tf := trendFactorBase + e.rnd.Float64()*trendFactorSpan
		predicted := m.OnTimeDelivery * tf
		out = append(out, types.SupplierForecast{
			SupplierID:           m.SupplierID,
			SupplierName:         m.Name,
			CurrentPerformance:   compute.RoundTo(m.OnTimeDelivery, 1),
			PredictedPerformance: compute.RoundTo(predicted, 1),
			Trend:                TrendFor(tf),
			RiskLevel:            RiskFor(predicted),
			Confidence:           supplierConfBase + e.rnd.Float64()*supplierConfSpan,
		})
	}
	return out
}

// TrendFor classifies a trend factor. Both bounds are exclusive.
func TrendFor(trendFactor float64) types.Trend {
	switch {
	case trendFactor > improvingAbove:
		return types.TrendImproving
	case trendFactor < decliningBelow:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

// RiskFor classifies a predicted on-time rate. Both bounds are exclusive:
// exactly 90 is medium, exactly 80 is high.
func RiskFor(predicted float64) types.RiskLevel {
	switch {
	case predicted > lowRiskAbove:
		return types.RiskLow
	case predicted > mediumRiskAbove:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}
