package dataset

import (
	"errors"
	"fmt"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/types"
)

// ErrInvalid wraps every problem reported by Validate.
var ErrInvalid = errors.New("dataset: invalid")

// monthsPerSeries is the expected length of every inventory series.
const monthsPerSeries = 12

// Validate checks ds for records the engines would silently mis-aggregate:
// duplicate or unknown supplier ids, unparseable dates, negative quantities
// or costs, and inventory series shorter than twelve months. All problems
// are joined into one error; each matches ErrInvalid.
func Validate(ds *types.Dataset) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	known := make(map[string]bool, len(ds.Suppliers))
	for _, s := range ds.Suppliers {
		if s.SupplierID == "" {
			add("supplier with empty id")
			continue
		}
		if known[s.SupplierID] {
			add("duplicate supplier %s", s.SupplierID)
		}
		known[s.SupplierID] = true
	}

	for _, s := range ds.Shipments {
		if !known[s.SupplierID] {
			add("shipment %s: unknown supplier %q", s.ShipmentID, s.SupplierID)
		}
		for _, d := range []struct{ field, v string }{
			{"order_date", s.OrderDate},
			{"scheduled_delivery", s.ScheduledDelivery},
			{"actual_delivery", s.ActualDelivery},
		} {
			if _, ok := compute.ParseDate(d.v); !ok {
				add("shipment %s: %s %q is not a date", s.ShipmentID, d.field, d.v)
			}
		}
		for _, q := range []struct {
			field string
			v     float64
		}{
			{"quantity_ordered", s.QuantityOrdered},
			{"quantity_delivered", s.QuantityDelivered},
			{"defect_count", s.DefectCount},
			{"cost", s.Cost},
			{"shipping_cost", s.ShippingCost},
		} {
			if q.v < 0 {
				add("shipment %s: negative %s", s.ShipmentID, q.field)
			}
		}
	}

	for _, item := range ds.Inventory {
		if len(item.TurnoverRate) < monthsPerSeries {
			add("inventory %s: turnover_rate has %d months", item.ProductID, len(item.TurnoverRate))
		}
		if len(item.MonthlyDemand) < monthsPerSeries {
			add("inventory %s: monthly_demand has %d months", item.ProductID, len(item.MonthlyDemand))
		}
		if item.CurrentStock < 0 {
			add("inventory %s: negative current_stock", item.ProductID)
		}
	}

	return errors.Join(errs...)
}
