package alerts

import (
	"strconv"
	"strings"

	"github.com/supplylens/supplylens/pkg/types"
)

// result is the outcome of a condition for one subject. Subject is empty for
// dashboard-wide fields and the supplier ID for per-supplier fields.
type result struct {
	subject string
	fires   bool
	value   float64
}

// evalCondition evaluates a rule condition string against a dashboard.
//
// Supported expressions (field operator value):
//
//	health_score < 7
//	average_on_time < 85
//	inventory_turnover < 4
//	underperforming_suppliers > 2
//	cost_savings > 50000
//	high_risk_suppliers > 0
//	declining_suppliers >= 3
//	supplier_on_time < 75        (evaluated per supplier)
//	supplier_defect_rate > 4     (evaluated per supplier)
//
// Returns nil if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, d *types.Dashboard) []result {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return nil
	}
	field, op, rhs := parts[0], parts[1], parts[2]
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return nil
	}

	switch field {
	case "supplier_on_time", "supplier_defect_rate":
		out := make([]result, 0, len(d.Suppliers))
		for _, m := range d.Suppliers {
			v := m.OnTimeDelivery
			if field == "supplier_defect_rate" {
				v = m.DefectRate
			}
			out = append(out, result{subject: m.SupplierID, fires: compareFloat(v, op, threshold), value: v})
		}
		return out

	default:
		v, ok := numericField(field, d)
		if !ok {
			return nil
		}
		return []result{{fires: compareFloat(v, op, threshold), value: v}}
	}
}

// numericField maps a dashboard-wide field name to its value.
func numericField(field string, d *types.Dashboard) (float64, bool) {
	switch field {
	case "health_score":
		return d.KPIs.HealthScore, true
	case "average_on_time":
		return d.KPIs.AverageOnTimeDelivery, true
	case "inventory_turnover":
		return d.KPIs.InventoryTurnover, true
	case "underperforming_suppliers":
		return float64(d.KPIs.UnderperformingSuppliers), true
	case "cost_savings":
		return d.KPIs.TotalCostSavings, true
	case "high_risk_suppliers":
		return countForecasts(d, func(f types.SupplierForecast) bool { return f.RiskLevel == types.RiskHigh }), true
	case "declining_suppliers":
		return countForecasts(d, func(f types.SupplierForecast) bool { return f.Trend == types.TrendDeclining }), true
	default:
		return 0, false
	}
}

func countForecasts(d *types.Dashboard, match func(types.SupplierForecast) bool) float64 {
	var n int
	for _, f := range d.SupplierForecasts {
		if match(f) {
			n++
		}
	}
	return float64(n)
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
