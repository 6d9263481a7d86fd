package types

// Status is the categorical performance band of a supplier.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusPoor      Status = "poor"
)

// SupplierMetrics is the per-supplier aggregate for one filter set.
type SupplierMetrics struct {
	SupplierID     string  `json:"supplier_id"`
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	OnTimeDelivery float64 `json:"onTimeDelivery"` // percent, 0–100
	DefectRate     float64 `json:"defectRate"`     // percent; exceeds 100 on degenerate data
	TotalOrders    int     `json:"totalOrders"`
	TotalValue     float64 `json:"totalValue"`
	Status         Status  `json:"status"`
	Rating         float64 `json:"rating"`
}

// KPIMetrics summarises supply-chain health across all suppliers.
type KPIMetrics struct {
	AverageOnTimeDelivery    float64 `json:"averageOnTimeDelivery"`
	InventoryTurnover        float64 `json:"inventoryTurnover"`
	UnderperformingSuppliers int     `json:"underperformingSuppliers"`
	TotalCostSavings         float64 `json:"totalCostSavings"`
	HealthScore              float64 `json:"healthScore"`
}

// InventoryPoint is one calendar month of the inventory trend chart.
type InventoryPoint struct {
	Month      string  `json:"month"`
	Turnover   float64 `json:"turnover"`
	Demand     float64 `json:"demand"`
	StockLevel float64 `json:"stockLevel"`
}

// Priority ranks an actionable recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a KPI-driven action item. Impact is free text such as
// "$45K annual savings".
type Recommendation struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Priority    Priority `json:"priority"`
}
