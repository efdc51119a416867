// Package pathfind implements the cheapest-itinerary search over a flight
// graph using Dijkstra's algorithm with fare prices as edge weights.
//
// Cheapest computes the minimum-total-price sequence of flight offers from
// an origin airport to a destination airport. Vertices are processed in
// order of increasing accumulated fare using a min-heap priority queue with
// the lazy decrease-key strategy: improved fares push duplicate heap
// entries, and stale entries are skipped when popped. The search stops as
// soon as the destination is extracted from the frontier; with non-negative
// fares its accumulated cost is final at that point.
//
// Tie-break policy: among equal-cost itineraries the search prefers the one
// with fewer legs; a remaining tie is resolved by relaxing each airport's
// outgoing offers in sorted order (destination, price, departure, airline),
// so repeated runs over an unmodified graph return the identical leg list.
//
// Complexity:
//
//   - Time:  O((V + E) log V) heap work plus O(E log E) for ordered relaxation.
//   - Space: O(V + E) for the fare, predecessor, and frontier structures.
//
// Errors (sentinel):
//
//	ErrNilGraph        - the graph pointer is nil.
//	ErrEmptyEndpoint   - origin or destination code is empty.
//	ErrAirportNotFound - origin or destination is not a graph vertex.
//	ErrNegativePrice   - a negative fare was detected during the pre-scan.
//	ErrNoRoute         - the destination is unreachable from the origin.
//
// ErrNoRoute is an expected outcome for sparse graphs, not a failure:
// callers are expected to match it with errors.Is and treat it as a valid
// "no itinerary" result.
package pathfind
