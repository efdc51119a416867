// Package route decides which itinerary to present for a query: the
// cheapest connecting path found by the search, or a direct offer within
// the convenience premium tolerance.
//
// The decision rule, applied by Select, compares a direct offer D against
// the cheapest connecting path C: the direct itinerary wins whenever
// D.Price <= C.Cost * DirectTolerance (inclusive). A direct flight that is
// at most 30% pricier than the best connection is considered worth the
// avoided stop; beyond that the connection wins.
//
// Planner ties the registry, graph, search, and selector together into a
// single stateless Plan operation. Endpoint codes are validated against
// the registry before any graph access.
package route

import (
	"errors"
	"fmt"
	"strings"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/flightgraph"
	"github.com/velmark/skyroute/pathfind"
)

// DirectTolerance is the convenience premium: a direct offer is preferred
// over a cheaper connecting path while its price stays within this factor
// of the connecting cost. The comparison is inclusive and uses exact
// float arithmetic; no currency rounding is applied.
const DirectTolerance = 1.30

// ErrSameEndpoints indicates a query whose origin and destination are the
// same airport, which is not a routable request.
var ErrSameEndpoints = errors.New("route: origin and destination are the same airport")

// Itinerary is the chosen result of a route query.
type Itinerary struct {
	// Legs are the flight offers composing the itinerary, in travel order.
	Legs []flightgraph.Offer `json:"legs"`

	// TotalCost is the sum of leg prices.
	TotalCost float64 `json:"total_cost"`

	// Stops is the number of intermediate stops (legs minus one).
	Stops int `json:"stops"`

	// Direct reports whether the direct branch of the selector won.
	Direct bool `json:"direct"`
}

// Route returns the airport code sequence of the itinerary, origin first.
func (it Itinerary) Route() []string {
	if len(it.Legs) == 0 {
		return nil
	}
	out := make([]string, 0, len(it.Legs)+1)
	out = append(out, it.Legs[0].Origin)
	for _, leg := range it.Legs {
		out = append(out, leg.Destination)
	}

	return out
}

// Select applies the direct-vs-connecting heuristic to the two candidates.
// Either candidate may be nil when absent. The second return is false when
// neither candidate exists (no route at all).
//
// Select is a pure function of the candidate costs: it performs no graph
// traversal and never re-inspects the graph.
func Select(direct *flightgraph.Offer, connecting *pathfind.Path) (Itinerary, bool) {
	switch {
	case direct == nil && connecting == nil:
		return Itinerary{}, false
	case direct == nil:
		return fromPath(*connecting), true
	case connecting == nil:
		return fromOffer(*direct), true
	case direct.Price <= connecting.Cost*DirectTolerance:
		return fromOffer(*direct), true
	default:
		return fromPath(*connecting), true
	}
}

func fromOffer(o flightgraph.Offer) Itinerary {
	return Itinerary{
		Legs:      []flightgraph.Offer{o},
		TotalCost: o.Price,
		Stops:     0,
		Direct:    true,
	}
}

func fromPath(p pathfind.Path) Itinerary {
	return Itinerary{
		Legs:      p.Legs,
		TotalCost: p.Cost,
		Stops:     p.Stops(),
		Direct:    false,
	}
}

// Planner answers route queries against a populated graph and registry.
// Both are read-only during Plan, so a single Planner may serve concurrent
// queries.
type Planner struct {
	reg *airport.Registry
	g   *flightgraph.Graph
}

// NewPlanner returns a Planner over the given registry and graph.
func NewPlanner(reg *airport.Registry, g *flightgraph.Graph) *Planner {
	return &Planner{reg: reg, g: g}
}

// Plan finds the itinerary to present for a single origin/destination
// query. Codes are trimmed and uppercased before validation.
//
// The sequence is fixed: validate endpoints against the registry
// (airport.ErrUnknownAirport, before any graph access) -> reject equal
// endpoints (ErrSameEndpoints) -> run the cheapest-path search and the
// direct-offer probe -> Select.
//
// pathfind.ErrNoRoute is returned when neither a direct offer nor a
// connecting path exists; callers should treat it as a normal outcome.
func (p *Planner) Plan(origin, destination string) (Itinerary, error) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))

	if _, err := p.reg.Lookup(origin); err != nil {
		return Itinerary{}, err
	}
	if _, err := p.reg.Lookup(destination); err != nil {
		return Itinerary{}, err
	}
	if origin == destination {
		return Itinerary{}, fmt.Errorf("%w: %q", ErrSameEndpoints, origin)
	}

	var direct *flightgraph.Offer
	if o, ok := p.g.DirectOffer(origin, destination); ok {
		direct = &o
	}

	var connecting *pathfind.Path
	path, err := pathfind.Cheapest(p.g, origin, destination)
	switch {
	case err == nil:
		connecting = &path
	case errors.Is(err, pathfind.ErrNoRoute), errors.Is(err, pathfind.ErrAirportNotFound):
		// A registered airport may have no offers yet; that is a missing
		// candidate, not a query failure.
	default:
		return Itinerary{}, err
	}

	it, ok := Select(direct, connecting)
	if !ok {
		return Itinerary{}, fmt.Errorf("%w: %s->%s", pathfind.ErrNoRoute, origin, destination)
	}

	return it, nil
}
