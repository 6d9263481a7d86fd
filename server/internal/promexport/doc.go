// Package promexport exposes the unfiltered dashboard in the Prometheus
// exposition format so KPIs can be scraped and graphed next to other
// infrastructure metrics.
//
// Handler(builder, firing) serves GET /metrics. Every scrape builds (or
// reuses the cached) dashboard for the empty filter set. Exposed families:
//
//	supplylens_health_score
//	supplylens_average_on_time_percent
//	supplylens_inventory_turnover
//	supplylens_underperforming_suppliers
//	supplylens_cost_savings
//	supplylens_supplier_on_time_percent{supplier_id,name,region,status}
//	supplylens_supplier_defect_rate_percent{supplier_id,name,region,status}
//	supplylens_supplier_orders{supplier_id,name,region,status}
//	supplylens_supplier_value{supplier_id,name,region,status}
//	supplylens_supplier_predicted_on_time_percent{supplier_id,trend,risk}
//	supplylens_alerts_firing
package promexport
