package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/supplylens/supplylens/pkg/report"
)

func newExportCmd(o *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export suppliers|inventory",
		Short:     "Exports supplier metrics or the inventory trend as CSV.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"suppliers", "inventory"},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			eng, _, err := o.engines(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, ferr := os.Create(out)
				if ferr != nil {
					return fmt.Errorf("create %s: %w", out, ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			switch args[0] {
			case "suppliers":
				return report.WriteSuppliersCSV(w, eng.SupplierMetrics(o.filters))
			default:
				return report.WriteInventoryCSV(w, eng.InventoryTrend())
			}
		},
	}
	cmd.Flags().StringVarP(&out, "out", "f", "", "write CSV to this file instead of stdout")
	return cmd
}
