// Package skyroute finds the cheapest way to fly between two airports,
// balancing the convenience of a direct flight against the savings of a
// connecting route.
//
// 🚀 What is skyroute?
//
//	A flight route optimization engine built from small, composable packages:
//		• Airport registry: IATA-coded airports, OurAirports CSV loading
//		• Flight graph: directed multigraph of priced flight offers
//		• Pathfinding: Dijkstra over fares with deterministic tie-breaking
//		• Route selection: direct vs connecting under a 1.30 price tolerance
//		• Providers: live pricing API with a synthetic, seedable fallback
//
// The engine prefers a direct flight unless a connecting itinerary is more
// than 30% cheaper: with a cheapest connecting cost C, the direct offer
// wins while its price stays within 1.30 x C.
//
// Everything is organized under focused packages:
//
//	airport/     — registry of IATA airports + CSV loader
//	flightgraph/ — directed flight-offer multigraph, thread-safe reads
//	pathfind/    — cheapest-path search (Dijkstra, functional options)
//	route/       — direct-vs-connecting selector and high-level Planner
//	provider/    — live, synthetic and fallback offer sources
//	render/      — terminal output for itineraries
//	cmd/         — skyroute (interactive CLI) and skyrouted (HTTP server)
//
// Quick example:
//
//	g := flightgraph.NewGraph()
//	_ = g.AddOffer(flightgraph.Offer{Origin: "JFK", Destination: "LHR", Price: 600})
//	_ = g.AddOffer(flightgraph.Offer{Origin: "JFK", Destination: "BOS", Price: 150})
//	_ = g.AddOffer(flightgraph.Offer{Origin: "BOS", Destination: "LHR", Price: 250})
//
//	path, _ := pathfind.Cheapest(g, "JFK", "LHR")
//	// path.Route() == [JFK BOS LHR], path.Cost == 400
//
//	go get github.com/velmark/skyroute
package skyroute
