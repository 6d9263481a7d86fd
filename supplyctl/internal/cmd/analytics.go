package cmd

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supplylens/supplylens/pkg/types"
)

func newKPIsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Prints the aggregate supply chain KPIs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			k := eng.KPIs(o.filters)
			return o.render(cmd.OutOrStdout(), k, func(tw *tabwriter.Writer) {
				row(tw, "KPI", "VALUE")
				row(tw, "Average on-time delivery (%)", k.AverageOnTimeDelivery)
				row(tw, "Inventory turnover", k.InventoryTurnover)
				row(tw, "Underperforming suppliers", k.UnderperformingSuppliers)
				row(tw, "Total cost savings", k.TotalCostSavings)
				row(tw, "Health score", k.HealthScore)
			})
		},
	}
}

func newSuppliersCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suppliers",
		Short: "Prints per-supplier performance, best on-time rate first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			metrics := eng.SupplierMetrics(o.filters)
			return o.render(cmd.OutOrStdout(), metrics, func(tw *tabwriter.Writer) {
				row(tw, "ID", "NAME", "REGION", "ON-TIME %", "DEFECT %", "ORDERS", "VALUE", "STATUS")
				for _, m := range metrics {
					row(tw, m.SupplierID, m.Name, m.Region, m.OnTimeDelivery, m.DefectRate, m.TotalOrders, m.TotalValue, m.Status)
				}
			})
		},
	}
}

func newTrendCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Prints the twelve-month inventory trend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			points := eng.InventoryTrend()
			return o.render(cmd.OutOrStdout(), points, func(tw *tabwriter.Writer) {
				row(tw, "MONTH", "TURNOVER", "DEMAND", "STOCK")
				for _, p := range points {
					row(tw, p.Month, p.Turnover, p.Demand, p.StockLevel)
				}
			})
		},
	}
}

func newBenchmarksCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "benchmarks",
		Short: "Compares each supplier against the population on on-time delivery and defect rate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, fc, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			rows := fc.Benchmarks(eng.SupplierMetrics(o.filters))
			return o.render(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				row(tw, "SUPPLIER", "METRIC", "VALUE", "AVERAGE", "BEST", "PERCENTILE", "DEVIATION %", "STATUS")
				for _, b := range rows {
					row(tw, b.SupplierName, b.Metric, b.CurrentValue, b.IndustryAverage, b.BestInClass, b.PercentileRank, b.Deviation, b.Status)
				}
			})
		},
	}
}

func newRecommendCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Prints KPI-driven action items.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			recs := eng.Recommendations(o.filters)
			return o.render(cmd.OutOrStdout(), recs, func(tw *tabwriter.Writer) {
				row(tw, "ID", "PRIORITY", "TITLE", "IMPACT")
				for _, r := range recs {
					row(tw, r.ID, r.Priority, r.Title, r.Impact)
				}
			})
		},
	}
}

// forecastResult is the JSON shape of `supplyctl forecast`.
type forecastResult struct {
	OnTime    []types.ForecastData     `json:"onTimeDelivery"`
	Inventory []types.ForecastData     `json:"inventoryTurnover"`
	Suppliers []types.SupplierForecast `json:"suppliers"`
	Insights  []types.ForecastInsight  `json:"insights"`
}
