package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/dataset"
	"github.com/supplylens/supplylens/pkg/forecast"
	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
	"github.com/supplylens/supplylens/supplyctl/internal/config"
)

// options carries global flags and the resolved configuration to every
// subcommand.
type options struct {
	cfgFile  string
	logLevel string
	filters  types.FilterOptions

	cfg config.CLIConfig
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "supplyctl",
		Short: "Supply chain analytics from the command line.",
		Long: `supplyctl computes supplier performance, KPIs, forecasts and benchmarks
from a supply chain dataset (JSON file, SQLite or MySQL/MariaDB) and prints
them as tables or JSON.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (default is $HOME/.supplyctl.yaml)")
	pf.StringVarP(&o.logLevel, "loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error")
	pf.StringP("dataset", "d", "", "dataset JSON file or DSN (sqlite://, mysql://, mariadb://)")
	pf.Bool("strict", false, "reject datasets with malformed records")
	pf.Uint64("seed", 0, "random seed for stock jitter and forecast confidence (0 = clock)")
	pf.StringP("output", "o", "", "output format: table|json")
	pf.StringVar(&o.filters.Region, "region", "", "only shipments from this region")
	pf.StringVar(&o.filters.Supplier, "supplier", "", "only shipments from this supplier id")
	pf.StringVar(&o.filters.ProductCategory, "category", "", "only shipments in this product category")
	pf.StringVar(&o.filters.TimePeriod, "period", "", "time period label carried into results")

	root.AddCommand(
		newKPIsCmd(o),
		newSuppliersCmd(o),
		newTrendCmd(o),
		newForecastCmd(o),
		newBenchmarksCmd(o),
		newRecommendCmd(o),
		newExportCmd(o),
		newImportCmd(o),
		newHealthCmd(o),
	)
	return root
}

// setup resolves the config file and lets explicitly set flags override it.
func (o *options) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid --loglevel %q", o.logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := config.Resolve(o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg.CLI

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		o.cfg.Dataset, _ = flags.GetString("dataset")
	}
	if flags.Changed("strict") {
		o.cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("seed") {
		o.cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("output") {
		o.cfg.Output, _ = flags.GetString("output")
	}
	switch o.cfg.Output {
	case "table", "json":
	default:
		return fmt.Errorf("unknown output format %q: want table|json", o.cfg.Output)
	}
	return nil
}

// engines loads the dataset and returns the metrics and forecast engines
// sharing one random source.
func (o *options) engines(ctx context.Context) (*compute.Engine, *forecast.Engine, error) {
	ds, err := dataset.Load(ctx, o.cfg.Dataset, o.cfg.Strict)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("dataset loaded", "source", o.cfg.Dataset,
		"suppliers", len(ds.Suppliers), "shipments", len(ds.Shipments), "inventory", len(ds.Inventory))
	rnd := randsrc.New(o.cfg.Seed)
	return compute.NewEngine(ds, rnd), forecast.NewEngine(rnd), nil
}

// render writes v as indented JSON, or calls table with a tabwriter.
func (o *options) render(w io.Writer, v any, table func(tw *tabwriter.Writer)) error {
	if o.cfg.Output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	table(tw)
	return tw.Flush()
}

// row writes tab-separated cells followed by a newline.
func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case float64:
			parts[i] = fmt.Sprintf("%.1f", v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}
