package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/supplylens/supplylens/pkg/report"
)

func newForecastCmd(o *options) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecasts on-time delivery, inventory turnover and supplier risk.",
		Long: `Forecasts on-time delivery and inventory turnover for the next three
periods, projects each supplier's next-period performance and derives
insights. With --report the plain-text forecast report is written as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, fc, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}
			metrics := eng.SupplierMetrics(o.filters)
			res := forecastResult{
				OnTime:    fc.OnTimeDelivery(metrics),
				Inventory: fc.InventoryTurnover(),
				Suppliers: fc.Suppliers(metrics),
			}
			res.Insights = fc.Insights(metrics, res.Suppliers)

			if reportPath != "" {
				if err := writeReport(reportPath, res); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", reportPath)
			}

			return o.render(cmd.OutOrStdout(), res, func(tw *tabwriter.Writer) {
				row(tw, "SERIES", "PERIOD", "PREDICTED", "LOWER", "UPPER", "CONFIDENCE %")
				for _, f := range res.OnTime {
					row(tw, "on-time", f.Month, f.Predicted, f.LowerBound, f.UpperBound, f.Confidence)
				}
				for _, f := range res.Inventory {
					row(tw, "turnover", f.Month, f.Predicted, f.LowerBound, f.UpperBound, f.Confidence)
				}
				row(tw, "")
				row(tw, "SUPPLIER", "CURRENT", "PREDICTED", "TREND", "RISK", "CONFIDENCE %")
				for _, s := range res.Suppliers {
					row(tw, s.SupplierName, s.CurrentPerformance, s.PredictedPerformance, s.Trend, s.RiskLevel, s.Confidence)
				}
				if len(res.Insights) > 0 {
					row(tw, "")
					row(tw, "INSIGHT", "IMPACT", "TITLE")
					for _, in := range res.Insights {
						row(tw, in.ID, in.Impact, in.Title)
					}
				}
			})
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "also write the plain-text forecast report to this file")
	return cmd
}

func writeReport(path string, res forecastResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WriteText(f, report.Forecasts{
		OnTime:    res.OnTime,
		Inventory: res.Inventory,
		Suppliers: res.Suppliers,
		Insights:  res.Insights,
	}, time.Now())
}
