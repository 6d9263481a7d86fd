package dashboard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/supplylens/supplylens/pkg/compute"
	"github.com/supplylens/supplylens/pkg/forecast"
	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
	"github.com/supplylens/supplylens/server/internal/store"
)

// Evaluator receives every freshly built dashboard. alerts.Engine satisfies it.
type Evaluator interface {
	Evaluate(d *types.Dashboard)
}

// snapshot is one immutable generation of the dataset.
type snapshot struct {
	metrics  *compute.Engine
	loadedAt time.Time
}

// Service builds dashboards over the current dataset.
type Service struct {
	current  atomic.Pointer[snapshot]
	rnd      randsrc.Source
	forecast *forecast.Engine
	cache    *store.Store
	alerts   Evaluator
	now      func() time.Time
}

// New returns a Service over ds. cache and alerts may be nil.
func New(ds *types.Dataset, rnd randsrc.Source, cache *store.Store, alerts Evaluator) *Service {
	if rnd == nil {
		rnd = randsrc.New(0)
	}
	s := &Service{
		rnd:      rnd,
		forecast: forecast.NewEngine(rnd),
		cache:    cache,
		alerts:   alerts,
		now:      time.Now,
	}
	s.current.Store(&snapshot{metrics: compute.NewEngine(ds, rnd), loadedAt: s.now()})
	return s
}

// Reload replaces the dataset and drops every cached dashboard.
func (s *Service) Reload(ds *types.Dataset) {
	s.current.Store(&snapshot{metrics: compute.NewEngine(ds, s.rnd), loadedAt: s.now()})
	purged := 0
	if s.cache != nil {
		purged = s.cache.Purge()
	}
	slog.Info("dashboard: dataset reloaded",
		"shipments", len(ds.Shipments),
		"suppliers", len(ds.Suppliers),
		"inventory", len(ds.Inventory),
		"purged", purged,
	)
}

// Dataset returns the dataset currently served.
func (s *Service) Dataset() *types.Dataset {
	return s.current.Load().metrics.Dataset()
}

// LoadedAt returns when the current dataset was installed.
func (s *Service) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}

// Build returns the dashboard for f, from cache when a fresh one exists.
func (s *Service) Build(ctx context.Context, f types.FilterOptions) (*types.Dashboard, error) {
	if s.cache != nil {
		if d, ok := s.cache.Fresh(f.Key()); ok {
			return d, nil
		}
	}

	snap := s.current.Load()
	d, err := s.derive(ctx, snap.metrics, f)
	if err != nil {
		return nil, err
	}

	// A reload during compute makes d stale; serve it but don't cache it.
	if s.cache != nil && s.current.Load() == snap {
		s.cache.Put(d)
	}
	if s.alerts != nil {
		s.alerts.Evaluate(d)
	}
	return d, nil
}

// derive runs every derivation for f. Supplier metrics come first; the
// remaining derivations only read them and run concurrently.
func (s *Service) derive(ctx context.Context, eng *compute.Engine, f types.FilterOptions) (*types.Dashboard, error) {
	start := s.now()
	metrics := eng.SupplierMetrics(f)

	d := &types.Dashboard{
		ID:          uuid.NewString(),
		Filters:     f,
		GeneratedAt: start.UTC(),
		Suppliers:   metrics,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.KPIs = eng.KPIsFrom(metrics)
		d.Recommendations = compute.RecommendationsFrom(metrics, d.KPIs)
		return ctx.Err()
	})
	g.Go(func() error {
		d.InventoryTrend = eng.InventoryTrend()
		return ctx.Err()
	})
	g.Go(func() error {
		d.OnTimeForecast = s.forecast.OnTimeDelivery(metrics)
		return ctx.Err()
	})
	g.Go(func() error {
		d.InventoryForecast = s.forecast.InventoryTurnover()
		return ctx.Err()
	})
	g.Go(func() error {
		d.SupplierForecasts = s.forecast.Suppliers(metrics)
		d.Insights = s.forecast.Insights(metrics, d.SupplierForecasts)
		return ctx.Err()
	})
	g.Go(func() error {
		d.Benchmarks = s.forecast.Benchmarks(metrics)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("dashboard: built",
		"filters", f.Key(),
		"suppliers", len(metrics),
		"elapsed", s.now().Sub(start),
	)
	return d, nil
}
