package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/supplylens/supplylens/pkg/types"
)

// Forecasts is the input of the text report.
type Forecasts struct {
	OnTime    []types.ForecastData
	Inventory []types.ForecastData
	Suppliers []types.SupplierForecast
	Insights  []types.ForecastInsight
}

var recommendations = []string{
	"Prioritize high-impact insights for immediate action",
	"Implement performance monitoring for declining suppliers",
	"Develop contingency plans for high-risk suppliers",
	"Consider expanding partnerships with improving suppliers",
	"Schedule quarterly forecast reviews to track prediction accuracy",
}

var methodology = []string{
	"Forecasts generated using linear regression with seasonal adjustments",
	"Confidence intervals calculated using historical variance",
	"Risk levels determined by predicted performance thresholds",
	"Benchmarks based on current supplier population statistics",
}

// WriteText renders the predictive analytics report dated at generated.
func WriteText(w io.Writer, f Forecasts, generated time.Time) error {
	var b strings.Builder

	b.WriteString("SUPPLY CHAIN PREDICTIVE ANALYTICS REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02"))

	section(&b, "EXECUTIVE SUMMARY")
	b.WriteString("This report provides 3-month forecasts for key supply chain metrics and identifies critical insights for proactive decision-making.\n\n")

	section(&b, "KEY PREDICTIONS")
	b.WriteString("On-Time Delivery Forecast:\n")
	for _, p := range f.OnTime {
		fmt.Fprintf(&b, "- %s: %s%% (Range: %s%% - %s%%)\n", p.Month, num(p.Predicted), num(p.LowerBound), num(p.UpperBound))
	}
	b.WriteString("\nInventory Turnover Forecast:\n")
	for _, p := range f.Inventory {
		fmt.Fprintf(&b, "- %s: %sx (Range: %sx - %sx)\n", p.Month, num(p.Predicted), num(p.LowerBound), num(p.UpperBound))
	}
	b.WriteString("\n")

	section(&b, "SUPPLIER RISK ASSESSMENT")
	b.WriteString("High Risk Suppliers:\n")
	var highRisk int
	for _, s := range f.Suppliers {
		if s.RiskLevel != types.RiskHigh {
			continue
		}
		highRisk++
		fmt.Fprintf(&b, "- %s: Current %s%% → Predicted %s%%\n", s.SupplierName, num(s.CurrentPerformance), num(s.PredictedPerformance))
	}
	if highRisk == 0 {
		b.WriteString("None identified\n")
	}
	b.WriteString("\n")

	section(&b, "CRITICAL INSIGHTS")
	if len(f.Insights) == 0 {
		b.WriteString("No critical insights for the current period.\n")
	}
	for i, in := range f.Insights {
		fmt.Fprintf(&b, "%d. %s (%s IMPACT)\n", i+1, in.Title, strings.ToUpper(string(in.Impact)))
		fmt.Fprintf(&b, "   Confidence: %s%%\n", num(in.Confidence))
		fmt.Fprintf(&b, "   Description: %s\n", in.Description)
		fmt.Fprintf(&b, "   Recommendation: %s\n", in.Recommendation)
		fmt.Fprintf(&b, "   Timeline: %s\n\n", in.Timeframe)
	}
	if len(f.Insights) == 0 {
		b.WriteString("\n")
	}

	section(&b, "RECOMMENDATIONS")
	for i, r := range recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	b.WriteString("\n")

	section(&b, "METHODOLOGY")
	for _, m := range methodology {
		fmt.Fprintf(&b, "- %s\n", m)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// section writes a heading underlined to its own width.
func section(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
}
