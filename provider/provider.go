// Package provider supplies flight offers to populate a flight graph.
//
// Two interchangeable sources implement Provider: Live queries a pricing
// API over HTTP, Synthetic generates schema-identical offers locally.
// Fallback composes them so that a provider failure substitutes synthetic
// data instead of failing the query; the route engine never learns which
// variant supplied its graph.
package provider

import (
	"context"
	"log/slog"

	"github.com/velmark/skyroute/flightgraph"
)

// Provider supplies flight offers departing a single origin airport
// toward the given candidate destinations. Implementations must return
// offers that satisfy flightgraph.Offer.Validate; the absence of service
// on a pair is expressed by omitting it, not by an error.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Offers returns available offers from origin to any of destinations.
	Offers(ctx context.Context, origin string, destinations []string) ([]flightgraph.Offer, error)
}

// Fallback returns a Provider that queries primary and, when it fails,
// substitutes backup's offers for the same request. The backup's error,
// if any, is returned as-is.
func Fallback(primary, backup Provider, log *slog.Logger) Provider {
	return &fallback{primary: primary, backup: backup, log: log}
}

type fallback struct {
	primary Provider
	backup  Provider
	log     *slog.Logger
}

func (f *fallback) Name() string { return f.primary.Name() }

func (f *fallback) Offers(ctx context.Context, origin string, destinations []string) ([]flightgraph.Offer, error) {
	offers, err := f.primary.Offers(ctx, origin, destinations)
	if err == nil {
		return offers, nil
	}
	if ctx.Err() != nil {
		// Do not mask cancellation with synthetic data.
		return nil, err
	}
	f.log.Warn("provider failed, substituting synthetic offers",
		"provider", f.primary.Name(),
		"origin", origin,
		"error", err,
	)

	return f.backup.Offers(ctx, origin, destinations)
}

// Populate fetches offers for every origin in codes and inserts them into
// g. Malformed offers are logged and skipped so they never reach the
// search; a provider error aborts population. It returns the number of
// offers added.
//
// Population must complete before the first search runs: the engine never
// observes partial graph state because the caller only shares g afterwards.
func Populate(ctx context.Context, g *flightgraph.Graph, p Provider, codes []string, log *slog.Logger) (int, error) {
	added := 0
	for i, origin := range codes {
		destinations := make([]string, 0, len(codes)-1)
		destinations = append(destinations, codes[:i]...)
		destinations = append(destinations, codes[i+1:]...)

		offers, err := p.Offers(ctx, origin, destinations)
		if err != nil {
			return added, err
		}
		for _, o := range offers {
			if err := g.AddOffer(o); err != nil {
				log.Warn("skipping invalid offer",
					"provider", p.Name(),
					"origin", o.Origin,
					"destination", o.Destination,
					"error", err,
				)

				continue
			}
			added++
		}
	}

	return added, nil
}
