package types

import "time"

// Trend is the direction of a supplier performance forecast.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// RiskLevel classifies a predicted on-time delivery rate.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BenchmarkStatus places a supplier relative to the population average.
type BenchmarkStatus string

const (
	BenchmarkAboveAverage BenchmarkStatus = "above_average"
	BenchmarkAverage      BenchmarkStatus = "average"
	BenchmarkBelowAverage BenchmarkStatus = "below_average"
	BenchmarkCritical     BenchmarkStatus = "critical"
)

// InsightType names the rule that produced a ForecastInsight.
type InsightType string

const (
	InsightTrend       InsightType = "trend"
	InsightRisk        InsightType = "risk"
	InsightOpportunity InsightType = "opportunity"
	InsightBenchmark   InsightType = "benchmark"
)

// Impact is the fixed severity attached to an insight rule.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// ForecastData is one future period of a forecast series.
type ForecastData struct {
	Month      string  `json:"month"`
	Predicted  float64 `json:"predicted"`
	UpperBound float64 `json:"upperBound"`
	LowerBound float64 `json:"lowerBound"`
	Confidence float64 `json:"confidence"` // percent
}

// SupplierForecast is the next-period outlook for one supplier.
type SupplierForecast struct {
	SupplierID           string    `json:"supplierId"`
	SupplierName         string    `json:"supplierName"`
	CurrentPerformance   float64   `json:"currentPerformance"`
	PredictedPerformance float64   `json:"predictedPerformance"`
	Trend                Trend     `json:"trend"`
	RiskLevel            RiskLevel `json:"riskLevel"`
	Confidence           float64   `json:"confidence"`
}

// BenchmarkData compares one supplier metric against the population.
type BenchmarkData struct {
	SupplierID      string          `json:"supplierId"`
	SupplierName    string          `json:"supplierName"`
	Metric          string          `json:"metric"`
	CurrentValue    float64         `json:"currentValue"`
	IndustryAverage float64         `json:"industryAverage"`
	BestInClass     float64         `json:"bestInClass"`
	PercentileRank  int             `json:"percentileRank"`
	Deviation       float64         `json:"deviation"` // signed percent
	Status          BenchmarkStatus `json:"status"`
}

// ForecastInsight is a rule-generated narrative finding.
type ForecastInsight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Impact         Impact      `json:"impact"`
	Confidence     float64     `json:"confidence"`
	Recommendation string      `json:"recommendation"`
	Timeframe      string      `json:"timeframe"`
}

// Dashboard bundles every derivation for one filter set.
type Dashboard struct {
	ID                string             `json:"id"`
	Filters           FilterOptions      `json:"filters"`
	GeneratedAt       time.Time          `json:"generated_at"`
	Suppliers         []SupplierMetrics  `json:"suppliers"`
	KPIs              KPIMetrics         `json:"kpis"`
	InventoryTrend    []InventoryPoint   `json:"inventory_trend"`
	OnTimeForecast    []ForecastData     `json:"on_time_forecast"`
	InventoryForecast []ForecastData     `json:"inventory_forecast"`
	SupplierForecasts []SupplierForecast `json:"supplier_forecasts"`
	Benchmarks        []BenchmarkData    `json:"benchmarks"`
	Insights          []ForecastInsight  `json:"insights"`
	Recommendations   []Recommendation   `json:"recommendations"`
}
