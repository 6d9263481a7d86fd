package compute

import (
	"math"

	"github.com/supplylens/supplylens/pkg/types"
)

// Thresholds that map on-time delivery and defect rate to a supplier status.
const (
	ExcellentOnTime = 90.0
	ExcellentDefect = 1.5
	GoodOnTime      = 80.0
	GoodDefect      = 3.0
)

// KPI heuristics.
const (
	// savingsRate is the share of a poor supplier's spend assumed recoverable.
	savingsRate = 0.15

	// maxHealthScore caps the health score. There is no lower bound.
	maxHealthScore = 10.0

	// underperformerPenalty is subtracted from the health score per poor supplier.
	underperformerPenalty = 0.5
)

// StatusFor classifies a supplier by its on-time delivery and defect rate.
func StatusFor(onTime, defectRate float64) types.Status {
	switch {
	case onTime >= ExcellentOnTime && defectRate <= ExcellentDefect:
		return types.StatusExcellent
	case onTime >= GoodOnTime && defectRate <= GoodDefect:
		return types.StatusGood
	default:
		return types.StatusPoor
	}
}

// HealthScore combines the average on-time rate with the number of poor
// suppliers. The result is capped at 10 and may go negative.
func HealthScore(avgOnTime float64, underperforming int) float64 {
	return math.Min(maxHealthScore, avgOnTime/10+(10-float64(underperforming)*underperformerPenalty))
}

// RoundTo rounds v to the given number of decimal places, with halves
// rounded towards positive infinity (so -12.35 becomes -12.3).
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

// percent returns num/den*100, or 0 when den is 0.
func percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// mean returns the arithmetic mean of vs, or 0 for an empty slice.
func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
