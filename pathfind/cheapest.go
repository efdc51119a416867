package pathfind

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/velmark/skyroute/flightgraph"
)

// Cheapest computes the minimum-total-price itinerary from origin to
// destination over g, treating each offer's price as its edge weight.
//
// Preconditions and validation (in order):
//  1. origin and destination must be non-empty (ErrEmptyEndpoint).
//  2. g must be non-nil (ErrNilGraph).
//  3. Both endpoints must be graph vertices (ErrAirportNotFound).
//  4. No offer in g may carry a negative fare (ErrNegativePrice).
//
// If origin == destination the empty path with cost 0 is returned.
// ErrNoRoute is returned when the destination is unreachable.
//
// Complexity: O((V + E) log V), see package documentation.
func Cheapest(g *flightgraph.Graph, origin, destination string, opts ...Option) (Path, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if origin == "" || destination == "" {
		return Path{}, ErrEmptyEndpoint
	}
	if g == nil {
		return Path{}, ErrNilGraph
	}
	if !g.HasAirport(origin) {
		return Path{}, fmt.Errorf("%w: %q", ErrAirportNotFound, origin)
	}
	if !g.HasAirport(destination) {
		return Path{}, fmt.Errorf("%w: %q", ErrAirportNotFound, destination)
	}

	// Fail fast on negative fares: Dijkstra finalizes each vertex exactly
	// once, which is only sound when every weight is non-negative.
	for _, o := range g.Offers() {
		if o.Price < 0 {
			return Path{}, fmt.Errorf("%w: %s->%s price=%.2f", ErrNegativePrice, o.Origin, o.Destination, o.Price)
		}
	}

	if origin == destination {
		return Path{}, nil
	}

	r := &runner{
		g:       g,
		options: cfg,
		cost:    map[string]float64{origin: 0},
		legs:    map[string]int{origin: 0},
		prev:    make(map[string]flightgraph.Offer),
		visited: make(map[string]bool),
	}

	if !r.search(origin, destination) {
		return Path{}, fmt.Errorf("%w: %s->%s", ErrNoRoute, origin, destination)
	}

	return r.reconstruct(origin, destination), nil
}

// runner holds the mutable state of a single search.
type runner struct {
	g       *flightgraph.Graph
	options Options

	cost    map[string]float64           // airport -> best known fare from origin
	legs    map[string]int               // airport -> leg count of that best fare
	prev    map[string]flightgraph.Offer // airport -> offer achieving the best fare
	visited map[string]bool              // airport -> fare finalized
	pq      frontier
}

// search runs the main Dijkstra loop. It returns true once destination is
// extracted from the frontier with a finalized fare, false when the
// frontier drains first (destination unreachable or beyond MaxCost).
func (r *runner) search(origin, destination string) bool {
	heap.Init(&r.pq)
	heap.Push(&r.pq, &frontierItem{code: origin})

	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*frontierItem)
		u := item.code

		// Skip stale entries left behind by the lazy decrease-key strategy.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		// Early exit: with non-negative fares, the fare of the popped
		// destination is already minimal.
		if u == destination {
			return true
		}

		r.relax(u)
	}

	return false
}

// relax attempts to improve the fare of every airport reachable by one
// offer from u. Offers are relaxed in sorted order so that equal-cost
// equal-legs alternatives resolve the same way on every run.
func (r *runner) relax(u string) {
	offers := r.g.Neighbors(u)
	sort.Slice(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if a.Departure != b.Departure {
			return a.Departure < b.Departure
		}

		return a.Airline < b.Airline
	})

	for _, o := range offers {
		v := o.Destination
		if r.visited[v] {
			continue
		}

		newCost := r.cost[u] + o.Price
		newLegs := r.legs[u] + 1
		if newCost > r.options.MaxCost || newLegs > r.options.MaxLegs {
			continue
		}

		oldCost, seen := r.cost[v]
		if seen && !better(newCost, newLegs, oldCost, r.legs[v]) {
			continue
		}

		r.cost[v] = newCost
		r.legs[v] = newLegs
		r.prev[v] = o
		heap.Push(&r.pq, &frontierItem{code: v, cost: newCost, legs: newLegs})
	}
}

// better reports whether the (cost, legs) candidate improves on the
// current best: strictly cheaper, or equally cheap with fewer legs.
func better(cost float64, legs int, curCost float64, curLegs int) bool {
	if cost != curCost {
		return cost < curCost
	}

	return legs < curLegs
}

// reconstruct walks the predecessor offers back from destination to origin
// and returns the forward path.
func (r *runner) reconstruct(origin, destination string) Path {
	var legs []flightgraph.Offer
	for at := destination; at != origin; {
		o := r.prev[at]
		legs = append(legs, o)
		at = o.Origin
	}
	// Reverse into travel order.
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	return Path{Legs: legs, Cost: r.cost[destination]}
}

// frontierItem is one (airport, fare) entry in the priority queue.
type frontierItem struct {
	code string
	cost float64
	legs int
}

// frontier is a min-heap of *frontierItem ordered by fare, then leg count,
// then airport code. The code component makes equal-fare pops deterministic.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	if f[i].legs != f[j].legs {
		return f[i].legs < f[j].legs
	}

	return f[i].code < f[j].code
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}
