package flightgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmark/skyroute/flightgraph"
)

func offer(origin, dest string, price float64) flightgraph.Offer {
	return flightgraph.Offer{
		Origin:      origin,
		Destination: dest,
		Price:       price,
		Airline:     "Test Air",
		Date:        "2026-09-02",
		Departure:   "09:00",
		Arrival:     "12:00",
		DurationMin: 180,
	}
}

func TestAddOffer_CreatesVertices(t *testing.T) {
	g := flightgraph.NewGraph()
	require.NoError(t, g.AddOffer(offer("JFK", "LHR", 542)))

	assert.True(t, g.HasAirport("JFK"))
	assert.True(t, g.HasAirport("LHR"))
	assert.Equal(t, 2, g.AirportCount())
	assert.Equal(t, 1, g.OfferCount())
	assert.Equal(t, []string{"JFK", "LHR"}, g.Airports())
}

func TestAddOffer_RejectsSelfLoop(t *testing.T) {
	g := flightgraph.NewGraph()
	err := g.AddOffer(offer("JFK", "JFK", 100))
	require.ErrorIs(t, err, flightgraph.ErrInvalidOffer)
	assert.Equal(t, 0, g.OfferCount())
}

func TestAddOffer_RejectsNegativePrice(t *testing.T) {
	g := flightgraph.NewGraph()
	err := g.AddOffer(offer("JFK", "LHR", -1))
	require.ErrorIs(t, err, flightgraph.ErrInvalidOffer)
	assert.Equal(t, 0, g.OfferCount())
}

func TestAddOffer_RejectsBadCode(t *testing.T) {
	g := flightgraph.NewGraph()
	err := g.AddOffer(offer("jfk", "LHR", 100))
	require.ErrorIs(t, err, flightgraph.ErrInvalidOffer)
}

func TestAddOffer_ZeroPriceAccepted(t *testing.T) {
	// Zero is a legal fare (award tickets); only negative prices are invalid.
	g := flightgraph.NewGraph()
	require.NoError(t, g.AddOffer(offer("JFK", "LHR", 0)))
}

func TestNeighbors_OutgoingOnly(t *testing.T) {
	g := flightgraph.NewGraph()
	require.NoError(t, g.AddOffer(offer("JFK", "BOS", 100)))
	require.NoError(t, g.AddOffer(offer("JFK", "LHR", 600)))
	require.NoError(t, g.AddOffer(offer("BOS", "JFK", 95)))

	nbrs := g.Neighbors("JFK")
	require.Len(t, nbrs, 2)
	for _, o := range nbrs {
		assert.Equal(t, "JFK", o.Origin)
	}

	// No implicit symmetry: LHR has no outgoing edges.
	assert.Nil(t, g.Neighbors("LHR"), "LHR is a sink, directed edge must not mirror")
	assert.Nil(t, g.Neighbors("ZZZ"))
}

func TestDirectOffer_CheapestWins(t *testing.T) {
	g := flightgraph.NewGraph()
	a := offer("JFK", "LHR", 620)
	b := offer("JFK", "LHR", 542)
	require.NoError(t, g.AddOffer(a))
	require.NoError(t, g.AddOffer(b))

	best, ok := g.DirectOffer("JFK", "LHR")
	require.True(t, ok)
	assert.Equal(t, 542.0, best.Price)
	assert.Equal(t, 2, g.OfferCount(), "parallel offers are retained")
}

func TestDirectOffer_TieBrokenByEarliestDeparture(t *testing.T) {
	g := flightgraph.NewGraph()
	late := offer("JFK", "LHR", 542)
	late.Departure = "18:30"
	early := offer("JFK", "LHR", 542)
	early.Departure = "07:15"
	require.NoError(t, g.AddOffer(late))
	require.NoError(t, g.AddOffer(early))

	best, ok := g.DirectOffer("JFK", "LHR")
	require.True(t, ok)
	assert.Equal(t, "07:15", best.Departure)
}

func TestDirectOffer_Absent(t *testing.T) {
	g := flightgraph.NewGraph()
	require.NoError(t, g.AddOffer(offer("JFK", "BOS", 100)))

	_, ok := g.DirectOffer("BOS", "LHR")
	assert.False(t, ok)
	_, ok = g.DirectOffer("BOS", "JFK")
	assert.False(t, ok, "reverse of a directed edge must not exist")
}

func TestOffers_FlatCopy(t *testing.T) {
	g := flightgraph.NewGraph()
	require.NoError(t, g.AddOffer(offer("JFK", "BOS", 100)))
	require.NoError(t, g.AddOffer(offer("BOS", "LHR", 300)))
	assert.Len(t, g.Offers(), 2)
}
