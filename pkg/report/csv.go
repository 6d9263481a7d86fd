package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/supplylens/supplylens/pkg/types"
)

var supplierHeader = []string{
	"supplier_id", "name", "region", "onTimeDelivery", "defectRate",
	"totalOrders", "totalValue", "status", "rating",
}

var inventoryHeader = []string{"month", "turnover", "demand", "stockLevel"}

// WriteSuppliersCSV writes one row per supplier under a header of JSON field
// names. Values containing commas or quotes are quoted.
func WriteSuppliersCSV(w io.Writer, metrics []types.SupplierMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(supplierHeader); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for _, m := range metrics {
		rec := []string{
			m.SupplierID,
			m.Name,
			m.Region,
			num(m.OnTimeDelivery),
			num(m.DefectRate),
			strconv.Itoa(m.TotalOrders),
			num(m.TotalValue),
			string(m.Status),
			num(m.Rating),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: write supplier %s: %w", m.SupplierID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInventoryCSV writes the monthly inventory trend.
func WriteInventoryCSV(w io.Writer, points []types.InventoryPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(inventoryHeader); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for _, p := range points {
		if err := cw.Write([]string{p.Month, num(p.Turnover), num(p.Demand), num(p.StockLevel)}); err != nil {
			return fmt.Errorf("report: write %s: %w", p.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// num renders v with the shortest exact representation (85 not 85.000000).
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
