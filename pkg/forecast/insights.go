package forecast

import (
	"fmt"
	"strings"

	"github.com/supplylens/supplylens/pkg/types"
)

// benchmarkShortfall flags suppliers below this share of the average
// on-time rate.
const benchmarkShortfall = 0.9

// Insights applies the narrative rules in fixed order (risk, trend,
// opportunity, benchmark) and returns one insight per rule that triggers.
// The result is never nil.
func (e *Engine) Insights(metrics []types.SupplierMetrics, forecasts []types.SupplierForecast) []types.ForecastInsight {
	out := []types.ForecastInsight{}

	var highRisk []string
	var declining, improving int
	for _, f := range forecasts {
		if f.RiskLevel == types.RiskHigh {
			highRisk = append(highRisk, f.SupplierName)
		}
		switch f.Trend {
		case types.TrendDeclining:
			declining++
		case types.TrendImproving:
			improving++
		}
	}

	if len(highRisk) > 0 {
		out = append(out, types.ForecastInsight{
			ID:             "RISK001",
			Type:           types.InsightRisk,
			Title:          fmt.Sprintf("%d Suppliers at High Risk", len(highRisk)),
			Description:    strings.Join(highRisk, ", ") + " are predicted to have delivery rates below 80% next month.",
			Impact:         types.ImpactHigh,
			Confidence:     87,
			Recommendation: "Initiate contingency planning and identify backup suppliers",
			Timeframe:      "Next 30 days",
		})
	}
	if declining > 0 {
		out = append(out, types.ForecastInsight{
			ID:             "TREND001",
			Type:           types.InsightTrend,
			Title:          "Declining Performance Trend Detected",
			Description:    fmt.Sprintf("%d suppliers showing downward performance trends, potentially impacting overall supply chain reliability.", declining),
			Impact:         types.ImpactMedium,
			Confidence:     82,
			Recommendation: "Schedule performance review meetings and develop improvement plans",
			Timeframe:      "Next 60 days",
		})
	}
	if improving > 0 {
		out = append(out, types.ForecastInsight{
			ID:             "OPP001",
			Type:           types.InsightOpportunity,
			Title:          "Performance Improvement Opportunities",
			Description:    fmt.Sprintf("%d suppliers showing positive trends. Consider expanding partnerships or sharing best practices.", improving),
			Impact:         types.ImpactMedium,
			Confidence:     79,
			Recommendation: "Increase order volumes with improving suppliers and document success factors",
			Timeframe:      "Next 90 days",
		})
	}

	rates := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		rates = append(rates, m.OnTimeDelivery)
	}
	avg := average(rates)
	var under int
	for _, r := range rates {
		if r < avg*benchmarkShortfall {
			under++
		}
	}
	if under > 0 {
		out = append(out, types.ForecastInsight{
			ID:             "BENCH001",
			Type:           types.InsightBenchmark,
			Title:          "Below-Average Performance Alert",
			Description:    fmt.Sprintf("%d suppliers performing significantly below industry average of %.1f%%.", under, avg),
			Impact:         types.ImpactHigh,
			Confidence:     94,
			Recommendation: "Implement performance improvement programs or consider supplier replacement",
			Timeframe:      "Immediate action required",
		})
	}
	return out
}
