package pathfind

import (
	"errors"
	"math"

	"github.com/velmark/skyroute/flightgraph"
)

// Sentinel errors returned by Cheapest.
var (
	// ErrNilGraph indicates a nil *flightgraph.Graph was passed to Cheapest.
	ErrNilGraph = errors.New("pathfind: graph is nil")

	// ErrEmptyEndpoint indicates an empty origin or destination code.
	ErrEmptyEndpoint = errors.New("pathfind: origin and destination must be non-empty")

	// ErrAirportNotFound indicates an endpoint that is not a vertex of the graph.
	ErrAirportNotFound = errors.New("pathfind: airport not present in graph")

	// ErrNegativePrice indicates a negative fare in the graph; Dijkstra's
	// correctness requires non-negative weights, so the search fails fast.
	ErrNegativePrice = errors.New("pathfind: negative fare encountered")

	// ErrNoRoute indicates the destination is unreachable from the origin.
	// This is a first-class result for disconnected graphs, not a fault.
	ErrNoRoute = errors.New("pathfind: no route found")

	// ErrBadMaxCost indicates WithMaxCost was given a negative ceiling.
	ErrBadMaxCost = errors.New("pathfind: MaxCost must be non-negative")

	// ErrBadMaxLegs indicates WithMaxLegs was given a non-positive ceiling.
	ErrBadMaxLegs = errors.New("pathfind: MaxLegs must be positive")
)

// Path is an ordered walk of flight offers from an origin to a destination:
// each leg's origin equals the previous leg's destination.
type Path struct {
	// Legs are the offers composing the itinerary, in travel order.
	Legs []flightgraph.Offer

	// Cost is the sum of leg prices.
	Cost float64
}

// Stops returns the number of intermediate stops: legs minus one.
// An empty path has zero stops.
func (p Path) Stops() int {
	if len(p.Legs) == 0 {
		return 0
	}

	return len(p.Legs) - 1
}

// Route returns the airport code sequence of the path, origin first.
// An empty path yields nil.
func (p Path) Route() []string {
	if len(p.Legs) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.Legs)+1)
	out = append(out, p.Legs[0].Origin)
	for _, leg := range p.Legs {
		out = append(out, leg.Destination)
	}

	return out
}

// Options configures the behavior of Cheapest.
//
// MaxCost - itineraries accumulating more than this fare are not explored.
// MaxLegs - itineraries with more than this many legs are not explored.
type Options struct {
	MaxCost float64
	MaxLegs int
}

// Option is a functional option for configuring Cheapest.
type Option func(*Options)

// WithMaxCost caps the total fare the search will explore. Frontier nodes
// whose accumulated fare exceeds the cap are abandoned.
// Panics with ErrBadMaxCost on a negative value.
func WithMaxCost(cost float64) Option {
	return func(o *Options) {
		if cost < 0 {
			panic(ErrBadMaxCost.Error())
		}
		o.MaxCost = cost
	}
}

// WithMaxLegs caps the number of legs the search will chain.
// Panics with ErrBadMaxLegs on a non-positive value.
func WithMaxLegs(legs int) Option {
	return func(o *Options) {
		if legs <= 0 {
			panic(ErrBadMaxLegs.Error())
		}
		o.MaxLegs = legs
	}
}

// defaultOptions returns Options with no cost or leg ceiling.
func defaultOptions() Options {
	return Options{
		MaxCost: math.Inf(1),
		MaxLegs: math.MaxInt,
	}
}
