// Package flightgraph defines the directed multigraph of airports and
// flight offers that the route search operates on.
//
// Vertices are IATA airport codes and appear in the graph as soon as at
// least one offer references them. Edges are FlightOffer records; parallel
// offers between the same airport pair are retained, so the graph is a
// multigraph. An edge A→B never implies B→A.
//
// The graph is mutable during population and must be treated as immutable
// once the first search runs. Reads and writes are guarded by a RWMutex,
// so concurrent read-only route queries against a populated graph are safe.
//
// Errors:
//
//	ErrInvalidOffer - offer has a negative price, a self-loop, or a bad code.
package flightgraph

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrInvalidOffer indicates a malformed flight offer: negative price,
// identical origin and destination, or an endpoint that is not a valid
// IATA code. Invalid offers never enter the graph.
var ErrInvalidOffer = errors.New("flightgraph: invalid flight offer")

// Offer is a single purchasable flight between two airports. It is the
// edge type of the graph; its Price is the edge weight.
type Offer struct {
	// Origin and Destination are IATA codes. Origin != Destination always.
	Origin      string
	Destination string

	// Price is the non-negative fare in the session currency.
	Price float64

	// Airline is the marketing carrier name.
	Airline string

	// Date is the departure date in YYYY-MM-DD form.
	Date string

	// Departure and Arrival are local clock times in HH:MM form.
	Departure string
	Arrival   string

	// DurationMin is the flight duration in minutes.
	DurationMin int
}

// Validate reports whether the offer may enter a graph.
// It returns an error wrapping ErrInvalidOffer describing the first
// violation found, or nil for a well-formed offer.
func (o Offer) Validate() error {
	if !validCode(o.Origin) || !validCode(o.Destination) {
		return fmt.Errorf("%w: bad endpoint %q->%q", ErrInvalidOffer, o.Origin, o.Destination)
	}
	if o.Origin == o.Destination {
		return fmt.Errorf("%w: self-loop %q", ErrInvalidOffer, o.Origin)
	}
	if o.Price < 0 {
		return fmt.Errorf("%w: negative price %.2f on %s->%s", ErrInvalidOffer, o.Price, o.Origin, o.Destination)
	}

	return nil
}

// Graph is a directed multigraph of airports connected by flight offers.
type Graph struct {
	mu sync.RWMutex

	// adjacency[origin][destination] holds every retained offer for the pair.
	adjacency map[string]map[string][]Offer

	offerCount int
}

// NewGraph returns an empty flight graph.
func NewGraph() *Graph {
	return &Graph{adjacency: make(map[string]map[string][]Offer)}
}

// AddOffer inserts an offer as a directed edge, creating the origin and
// destination vertices if absent. The only validation applied is
// Offer.Validate: non-negative price, origin != destination, sane codes.
//
// Complexity: O(1) amortized.
func (g *Graph) AddOffer(o Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[o.Origin]; !ok {
		g.adjacency[o.Origin] = make(map[string][]Offer)
	}
	if _, ok := g.adjacency[o.Destination]; !ok {
		g.adjacency[o.Destination] = make(map[string][]Offer)
	}
	g.adjacency[o.Origin][o.Destination] = append(g.adjacency[o.Origin][o.Destination], o)
	g.offerCount++

	return nil
}

// Neighbors returns a copy of every outgoing offer from the given airport,
// in no guaranteed order. Searches must not rely on the order for
// correctness. If the airport is not in the graph, Neighbors returns nil.
//
// Complexity: O(d) where d is the out-degree of code.
func (g *Graph) Neighbors(code string) []Offer {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[code]
	if !ok {
		return nil
	}
	var out []Offer
	for _, offers := range nbrs {
		out = append(out, offers...)
	}

	return out
}

// DirectOffer returns the cheapest retained offer from origin to
// destination, if any exists. Ties on price are broken by the earliest
// departure time, then by airline name, so the result is deterministic
// regardless of insertion order.
//
// Complexity: O(k) where k is the number of parallel offers for the pair.
func (g *Graph) DirectOffer(origin, destination string) (Offer, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	offers := g.adjacency[origin][destination]
	if len(offers) == 0 {
		return Offer{}, false
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if cheaperOffer(o, best) {
			best = o
		}
	}

	return best, true
}

// cheaperOffer reports whether a should be preferred over b:
// lower price, then earlier departure, then airline name.
func cheaperOffer(a, b Offer) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.Departure != b.Departure {
		return a.Departure < b.Departure
	}

	return a.Airline < b.Airline
}

// HasAirport reports whether code appears in at least one offer.
func (g *Graph) HasAirport(code string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.adjacency[code]
	return ok
}

// Airports returns every airport code present in the graph, ascending.
//
// Complexity: O(V log V)
func (g *Graph) Airports() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.adjacency))
	for code := range g.adjacency {
		out = append(out, code)
	}
	sort.Strings(out)

	return out
}

// AirportCount returns the number of vertices.
func (g *Graph) AirportCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency)
}

// OfferCount returns the number of edges, counting parallel offers.
func (g *Graph) OfferCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.offerCount
}

// Offers returns a flat copy of every edge in the graph, in no guaranteed
// order. Used by searches that pre-scan edge weights.
//
// Complexity: O(E)
func (g *Graph) Offers() []Offer {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Offer, 0, g.offerCount)
	for _, nbrs := range g.adjacency {
		for _, offers := range nbrs {
			out = append(out, offers...)
		}
	}

	return out
}

// validCode reports whether code is exactly three uppercase ASCII letters.
// Kept local so the graph does not depend on the registry package.
func validCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}

	return true
}
