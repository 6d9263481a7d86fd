package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
)

// serverHealth mirrors the server's GET /api/v1/health payload.
type serverHealth struct {
	State           string    `json:"state"`
	HealthScore     float64   `json:"health_score"`
	SupplierCount   int       `json:"supplier_count"`
	ShipmentCount   int       `json:"shipment_count"`
	InventoryCount  int       `json:"inventory_count"`
	AlertCount      int       `json:"alert_count"`
	DatasetLoadedAt time.Time `json:"dataset_loaded_at"`
}

func newHealthCmd(o *options) *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Queries a running supplylens-server for its health summary.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := o.cfg.Server
			if u, _ := cmd.Flags().GetString("server"); u != "" {
				srv.URL = u
			}

			client := retryablehttp.NewClient()
			client.RetryMax = retries
			client.RetryWaitMax = 2 * time.Second
			client.HTTPClient.Timeout = srv.Timeout
			client.Logger = slog.Default()

			req, err := retryablehttp.NewRequestWithContext(cmd.Context(), http.MethodGet, srv.URL+"/api/v1/health", nil)
			if err != nil {
				return err
			}
			if key := srv.Key(); key != "" {
				req.Header.Set(srv.EffectiveHeader(), key)
			}

			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("query %s: %w", srv.URL, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("query %s: unexpected status %s", srv.URL, resp.Status)
			}

			var h serverHealth
			if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
				return fmt.Errorf("decode health: %w", err)
			}
			return o.render(cmd.OutOrStdout(), h, func(tw *tabwriter.Writer) {
				row(tw, "STATE", "SCORE", "SUPPLIERS", "SHIPMENTS", "INVENTORY", "ALERTS", "LOADED")
				row(tw, h.State, h.HealthScore, h.SupplierCount, h.ShipmentCount, h.InventoryCount, h.AlertCount,
					h.DatasetLoadedAt.Format(time.RFC3339))
			})
		},
	}
	cmd.Flags().String("server", "", "server base URL (overrides cli.server.url)")
	cmd.Flags().IntVar(&retries, "retries", 2, "retry attempts on connection errors and 5xx responses")
	return cmd
}
