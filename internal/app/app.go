// Package app assembles the route engine from configuration: airport
// registry, offer provider, populated flight graph and planner. Both the
// CLI and the HTTP server build on it.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/flightgraph"
	"github.com/velmark/skyroute/internal/config"
	"github.com/velmark/skyroute/internal/obs"
	"github.com/velmark/skyroute/provider"
	"github.com/velmark/skyroute/route"
)

// App holds the assembled engine.
type App struct {
	Registry *airport.Registry
	Graph    *flightgraph.Graph
	Planner  *route.Planner
	Logger   *slog.Logger
}

// Build assembles the engine per cfg. Population happens here, before the
// graph is shared, so searches only ever see the complete network.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *obs.Metrics) (*App, error) {
	reg, err := loadRegistry(cfg.Airports)
	if err != nil {
		return nil, err
	}

	codes := cfg.Airports.Codes
	if len(codes) == 0 {
		codes = reg.Codes()
	}
	for _, code := range codes {
		if !reg.Has(code) {
			return nil, errors.Errorf("app: configured airport %s not in registry", code)
		}
	}

	p, err := buildProvider(cfg.Provider, reg, logger, metrics)
	if err != nil {
		return nil, err
	}

	g := flightgraph.NewGraph()
	start := time.Now()
	added, err := provider.Populate(ctx, g, p, codes, logger)
	if err != nil {
		return nil, errors.Wrap(err, "app: populate graph")
	}
	logger.Info("flight graph populated",
		"provider", p.Name(),
		"airports", len(codes),
		"offers", added,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &App{
		Registry: reg,
		Graph:    g,
		Planner:  route.NewPlanner(reg, g),
		Logger:   logger,
	}, nil
}

func loadRegistry(cfg config.Airports) (*airport.Registry, error) {
	if cfg.CSVPath == "" {
		return airport.NewRegistry(demoAirports)
	}

	f, err := os.Open(cfg.CSVPath)
	if err != nil {
		return nil, errors.Wrap(err, "app: open airports csv")
	}
	defer f.Close()

	reg, err := airport.LoadCSV(f)
	if err != nil {
		return nil, errors.Wrap(err, "app: load airports csv")
	}

	return reg, nil
}

func buildProvider(cfg config.Provider, reg *airport.Registry, logger *slog.Logger, metrics *obs.Metrics) (provider.Provider, error) {
	synthetic := provider.NewSynthetic(cfg.Seed, reg)
	if cfg.Mode == config.ModeSynthetic {
		return synthetic, nil
	}

	live := provider.NewLive(provider.LiveConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		APIHost: cfg.APIHost,
	})
	if cfg.Mode == config.ModeLive {
		return live, nil
	}

	// auto: live first, synthetic substitutes on failure.
	return provider.Fallback(instrumented{live, metrics}, synthetic, logger), nil
}

// instrumented counts provider failures and observes call latency.
type instrumented struct {
	provider.Provider
	metrics *obs.Metrics
}

func (i instrumented) Offers(ctx context.Context, origin string, destinations []string) ([]flightgraph.Offer, error) {
	start := time.Now()
	offers, err := i.Provider.Offers(ctx, origin, destinations)
	i.metrics.ObserveProviderLatency(i.Name(), time.Since(start).Seconds())
	if err != nil {
		i.metrics.IncProviderFailure(i.Name())
	}

	return offers, err
}

// demoAirports is the built-in network used when no CSV is configured.
var demoAirports = []airport.Airport{
	{Code: "JFK", Name: "John F Kennedy International", Municipality: "New York", Country: "US"},
	{Code: "LAX", Name: "Los Angeles International", Municipality: "Los Angeles", Country: "US"},
	{Code: "ORD", Name: "Chicago O'Hare International", Municipality: "Chicago", Country: "US"},
	{Code: "SFO", Name: "San Francisco International", Municipality: "San Francisco", Country: "US"},
	{Code: "BOS", Name: "Logan International", Municipality: "Boston", Country: "US"},
	{Code: "MIA", Name: "Miami International", Municipality: "Miami", Country: "US"},
	{Code: "SEA", Name: "Seattle-Tacoma International", Municipality: "Seattle", Country: "US"},
	{Code: "DEN", Name: "Denver International", Municipality: "Denver", Country: "US"},
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International", Municipality: "Atlanta", Country: "US"},
	{Code: "DFW", Name: "Dallas Fort Worth International", Municipality: "Dallas", Country: "US"},
	{Code: "YYZ", Name: "Toronto Pearson International", Municipality: "Toronto", Country: "CA"},
	{Code: "YUL", Name: "Montreal-Trudeau International", Municipality: "Montreal", Country: "CA"},
	{Code: "LHR", Name: "London Heathrow", Municipality: "London", Country: "GB"},
	{Code: "CDG", Name: "Paris Charles de Gaulle", Municipality: "Paris", Country: "FR"},
	{Code: "FRA", Name: "Frankfurt am Main", Municipality: "Frankfurt", Country: "DE"},
	{Code: "AMS", Name: "Amsterdam Schiphol", Municipality: "Amsterdam", Country: "NL"},
	{Code: "MAD", Name: "Adolfo Suarez Madrid-Barajas", Municipality: "Madrid", Country: "ES"},
	{Code: "DXB", Name: "Dubai International", Municipality: "Dubai", Country: "AE"},
	{Code: "HND", Name: "Tokyo Haneda International", Municipality: "Tokyo", Country: "JP"},
	{Code: "SYD", Name: "Sydney Kingsford Smith International", Municipality: "Sydney", Country: "AU"},
}
