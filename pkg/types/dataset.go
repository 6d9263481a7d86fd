package types

// Shipment is one order-to-delivery record. Dates are kept as the raw strings
// found in the dataset; they are only parsed when a metric needs them.
type Shipment struct {
	ShipmentID        string  `json:"shipment_id"`
	SupplierID        string  `json:"supplier_id"`
	SupplierName      string  `json:"supplier_name"`
	Region            string  `json:"region"`
	ProductCategory   string  `json:"product_category"`
	ProductName       string  `json:"product_name"`
	OrderDate         string  `json:"order_date"`
	ScheduledDelivery string  `json:"scheduled_delivery"`
	ActualDelivery    string  `json:"actual_delivery"`
	QuantityOrdered   float64 `json:"quantity_ordered"`
	QuantityDelivered float64 `json:"quantity_delivered"`
	DefectCount       float64 `json:"defect_count"`
	Cost              float64 `json:"cost"`
	ShippingCost      float64 `json:"shipping_cost"`
}

// Supplier is one entry of the static supplier directory.
type Supplier struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	Rating     float64 `json:"rating"`
}

// InventoryItem holds twelve monthly turnover and demand figures for a product.
type InventoryItem struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Category      string    `json:"category"`
	CurrentStock  float64   `json:"current_stock"`
	TurnoverRate  []float64 `json:"turnover_rate"`
	MonthlyDemand []float64 `json:"monthly_demand"`
}

// Dataset is the full static input loaded once per process (or per reload).
// Callers must treat it as immutable once handed to an engine.
type Dataset struct {
	Shipments []Shipment      `json:"shipments"`
	Suppliers []Supplier      `json:"suppliers"`
	Inventory []InventoryItem `json:"inventory"`
}
