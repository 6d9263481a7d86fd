package types

import "strings"

// Sentinel filter values that disable a filter dimension.
const (
	AllRegions   = "all-regions"
	AllSuppliers = "all-suppliers"
	AllProducts  = "all-products"
)

// FilterOptions narrows the shipments considered by the metrics engine.
// An empty field, or any value starting with "all-", imposes no constraint.
//
// TimePeriod is accepted and carried through to results but is not applied
// to any computation.
type FilterOptions struct {
	Region          string `json:"region,omitempty"`
	Supplier        string `json:"supplier,omitempty"`
	ProductCategory string `json:"productCategory,omitempty"`
	TimePeriod      string `json:"timePeriod,omitempty"`
}

// Active reports whether v constrains its dimension.
func Active(v string) bool {
	return v != "" && !strings.HasPrefix(v, "all-")
}

// Key returns a stable cache key. Inactive dimensions collapse to "*" so
// {} and {Region: "all-regions"} share a key.
func (f FilterOptions) Key() string {
	parts := []string{f.Region, f.Supplier, f.ProductCategory, f.TimePeriod}
	for i, p := range parts {
		if !Active(p) {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, "|")
}
