package forecast

import (
	"math"
	"sort"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/types"
)

// Benchmark metric names.
const (
	MetricOnTime = "On-Time Delivery"
	MetricDefect = "Defect Rate"
)

// Benchmarks compares every supplier against the population on two metrics
// and returns two rows per supplier, on-time delivery first. An empty input
// yields an empty result.
func (e *Engine) Benchmarks(metrics []types.SupplierMetrics) []types.BenchmarkData {
	if len(metrics) == 0 {
		return []types.BenchmarkData{}
	}

	onTime := make([]float64, 0, len(metrics))
	defect := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		onTime = append(onTime, m.OnTimeDelivery)
		defect = append(defect, m.DefectRate)
	}
	avgOnTime := average(onTime)
	avgDefect := average(defect)
	bestOnTime := max64(onTime)
	bestDefect := min64(defect)

	out := make([]types.BenchmarkData, 0, 2*len(metrics))
	for _, m := range metrics {
		out = append(out,
			types.BenchmarkData{
				SupplierID:      m.SupplierID,
				SupplierName:    m.Name,
				Metric:          MetricOnTime,
				CurrentValue:    m.OnTimeDelivery,
				IndustryAverage: compute.RoundTo(avgOnTime, 1),
				BestInClass:     bestOnTime,
				PercentileRank:  PercentileRank(m.OnTimeDelivery, onTime, false),
				Deviation:       compute.RoundTo(deviation(m.OnTimeDelivery, avgOnTime), 1),
				Status:          OnTimeStatus(m.OnTimeDelivery, avgOnTime),
			},
			types.BenchmarkData{
				SupplierID:      m.SupplierID,
				SupplierName:    m.Name,
				Metric:          MetricDefect,
				CurrentValue:    m.DefectRate,
				IndustryAverage: compute.RoundTo(avgDefect, 2),
				BestInClass:     bestDefect,
				PercentileRank:  PercentileRank(m.DefectRate, defect, true),
				Deviation:       compute.RoundTo(deviation(m.DefectRate, avgDefect), 1),
				Status:          DefectStatus(m.DefectRate, avgDefect),
			},
		)
	}
	return out
}

// OnTimeStatus bands an on-time rate against the population average.
func OnTimeStatus(value, avg float64) types.BenchmarkStatus {
	switch {
	case value >= avg*1.1:
		return types.BenchmarkAboveAverage
	case value >= avg*0.9:
		return types.BenchmarkAverage
	case value >= avg*0.8:
		return types.BenchmarkBelowAverage
	default:
		return types.BenchmarkCritical
	}
}

// DefectStatus bands a defect rate against the population average; lower
// is better.
func DefectStatus(value, avg float64) types.BenchmarkStatus {
	switch {
	case value <= avg*0.5:
		return types.BenchmarkAboveAverage
	case value <= avg*1.1:
		return types.BenchmarkAverage
	case value <= avg*1.5:
		return types.BenchmarkBelowAverage
	default:
		return types.BenchmarkCritical
	}
}

// PercentileRank returns round(rank/n × 100) where rank is the 1-based
// position of the first occurrence of value in population sorted ascending
// (descending when lowerIsBetter). Tied values share the first position.
// A value absent from the population ranks 0.
func PercentileRank(value float64, population []float64, lowerIsBetter bool) int {
	if len(population) == 0 {
		return 0
	}
	sorted := append([]float64(nil), population...)
	if lowerIsBetter {
		sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	} else {
		sort.Float64s(sorted)
	}
	rank := 0
	for i, v := range sorted {
		if v == value {
			rank = i + 1
			break
		}
	}
	return int(compute.RoundTo(float64(rank)/float64(len(sorted))*100, 0))
}

// deviation returns (value-avg)/avg × 100, or 0 when avg is 0.
func deviation(value, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	return (value - avg) / avg * 100
}

func max64(vs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vs {
		m = math.Max(m, v)
	}
	return m
}

func min64(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}
