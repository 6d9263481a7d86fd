package forecast

import "math"

// Periods is the number of future points every forecast series produces.
const Periods = 3

// z95 is the two-sided 95% normal quantile.
const z95 = 1.96

// LinearTrend fits an ordinary least-squares line over historical (x is the
// index 0..n-1) and projects it to x = n, n+1, n+2. Each projection is scaled
// by seasonality[(n+i) mod len] when seasonality is non-empty and floored at 0.
//
// An empty input is returned unchanged. A single value cannot carry a slope,
// so it is projected flat and scaled by seasonality[i mod len].
func LinearTrend(historical, seasonality []float64) []float64 {
	n := len(historical)
	switch n {
	case 0:
		return historical
	case 1:
		out := make([]float64, Periods)
		for i := range out {
			out[i] = math.Max(0, historical[0]*factor(seasonality, i))
		}
		return out
	}

	fn := float64(n)
	xSum := fn * (fn - 1) / 2
	xxSum := fn * (fn - 1) * (2*fn - 1) / 6
	var ySum, xySum float64
	for i, v := range historical {
		ySum += v
		xySum += v * float64(i)
	}
	slope := (fn*xySum - xSum*ySum) / (fn*xxSum - xSum*xSum)
	intercept := (ySum - slope*xSum) / fn

	out := make([]float64, Periods)
	for i := range out {
		x := n + i
		out[i] = math.Max(0, (slope*float64(x)+intercept)*factor(seasonality, x))
	}
	return out
}

// factor returns the cyclic seasonality multiplier for index i, or 1.
func factor(seasonality []float64, i int) float64 {
	if len(seasonality) == 0 {
		return 1
	}
	return seasonality[i%len(seasonality)]
}

// ConfidenceInterval returns the 95% band predicted ± 1.96·√variance. The
// lower bound never drops below 0.
func ConfidenceInterval(predicted, variance float64) (upper, lower float64) {
	margin := z95 * math.Sqrt(variance)
	return predicted + margin, math.Max(0, predicted-margin)
}

// populationVariance returns the population variance of vs around mean, or 0
// for an empty slice.
func populationVariance(vs []float64, mean float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(vs))
}

func average(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
