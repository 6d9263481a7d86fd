package forecast

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestLinearTrend_Empty(t *testing.T) {
	if got := LinearTrend(nil, []float64{1.1}); len(got) != 0 {
		t.Errorf("LinearTrend(nil) = %v, want empty", got)
	}
}

func TestLinearTrend_SingleValueAppliesSeasonality(t *testing.T) {
	got := LinearTrend([]float64{80}, []float64{1.1, 0.9, 1.0})
	want := []float64{88, 72, 80}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-9) {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinearTrend_SingleValueNoSeasonality(t *testing.T) {
	got := LinearTrend([]float64{42}, nil)
	for i, v := range got {
		if v != 42 {
			t.Errorf("[%d] = %v, want 42", i, v)
		}
	}
}

func TestLinearTrend_Line(t *testing.T) {
	tests := []struct {
		name        string
		historical  []float64
		seasonality []float64
		want        []float64
	}{
		{"rising", []float64{1, 2, 3, 4}, nil, []float64{5, 6, 7}},
		{"flat", []float64{10, 10}, nil, []float64{10, 10, 10}},
		// x = 3, 4, 5 → seasonality[1], [0], [1]
		{"cyclic seasonality", []float64{2, 4, 6}, []float64{2, 0.5}, []float64{4, 20, 6}},
		{"negative floored", []float64{10, 5, 0}, nil, []float64{0, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LinearTrend(tc.historical, tc.seasonality)
			if len(got) != Periods {
				t.Fatalf("len = %d, want %d", len(got), Periods)
			}
			for i := range tc.want {
				if !almostEqual(got[i], tc.want[i], 1e-9) {
					t.Errorf("[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestConfidenceInterval(t *testing.T) {
	tests := []struct {
		predicted, variance float64
		upper, lower        float64
	}{
		{100, 25, 109.8, 90.2},
		{50, 0, 50, 50},
		{1, 4, 4.92, 0}, // lower floored
	}
	for _, tc := range tests {
		upper, lower := ConfidenceInterval(tc.predicted, tc.variance)
		if !almostEqual(upper, tc.upper, 1e-9) || !almostEqual(lower, tc.lower, 1e-9) {
			t.Errorf("ConfidenceInterval(%v, %v) = (%v, %v), want (%v, %v)",
				tc.predicted, tc.variance, upper, lower, tc.upper, tc.lower)
		}
	}
}

func TestPopulationVariance(t *testing.T) {
	vs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := populationVariance(vs, average(vs)); !almostEqual(got, 4, 1e-9) {
		t.Errorf("populationVariance = %v, want 4", got)
	}
	if got := populationVariance(nil, 0); got != 0 {
		t.Errorf("populationVariance(nil) = %v, want 0", got)
	}
}
