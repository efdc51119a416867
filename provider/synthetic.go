package provider

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/flightgraph"
)

// Airline pools for generated offers. International pairs draw from the
// major carriers only; domestic pairs may draw regionals too.
var (
	majorAirlines = []string{
		"American Airlines", "Delta Air Lines", "United Airlines", "Southwest Airlines",
		"British Airways", "Lufthansa", "Air France", "KLM Royal Dutch Airlines",
		"Emirates", "Qatar Airways", "Singapore Airlines", "Cathay Pacific",
		"Japan Airlines", "ANA All Nippon Airways", "Turkish Airlines",
		"Iberia", "Air Canada", "Qantas", "Korean Air",
	}
	regionalAirlines = []string{
		"Alaska Airlines", "JetBlue Airways", "Frontier Airlines", "Spirit Airlines",
		"Allegiant Air", "Hawaiian Airlines", "WestJet", "Porter Airlines",
	}
)

// serviceRate is the probability that a given ordered airport pair has any
// scheduled service in the generated network.
const serviceRate = 0.85

// Synthetic generates schema-identical flight offers locally, for use when
// the live API is unavailable or quota-exhausted. Prices and schedules are
// plausible rather than real: domestic fares run 89-299, international
// pairs add a 200-800 surcharge, and durations track the route kind.
//
// A Synthetic is deterministic for a given seed and call sequence, which
// makes populated graphs reproducible in tests and demos. It is not safe
// for concurrent use; populate the graph from a single goroutine.
type Synthetic struct {
	rng *rand.Rand
	reg *airport.Registry
	now func() time.Time
}

// NewSynthetic returns a generator seeded with seed. The registry supplies
// country codes so international pairs can price differently; it may be nil,
// in which case every pair is treated as domestic.
func NewSynthetic(seed int64, reg *airport.Registry) *Synthetic {
	return &Synthetic{
		rng: rand.New(rand.NewSource(seed)),
		reg: reg,
		now: time.Now,
	}
}

// Name implements Provider.
func (s *Synthetic) Name() string { return "synthetic" }

// Offers implements Provider. Offers depart seven days from now, matching
// the live provider's search window.
func (s *Synthetic) Offers(ctx context.Context, origin string, destinations []string) ([]flightgraph.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	date := s.now().AddDate(0, 0, 7).Format("2006-01-02")

	var out []flightgraph.Offer
	for _, destination := range destinations {
		if destination == origin {
			continue
		}
		if s.rng.Float64() >= serviceRate {
			continue
		}
		out = append(out, s.generate(origin, destination, date))
	}

	return out, nil
}

// generate builds one offer for the pair.
func (s *Synthetic) generate(origin, destination, date string) flightgraph.Offer {
	international := s.international(origin, destination)

	price := float64(89 + s.rng.Intn(211)) // 89..299
	pool := append([]string{}, majorAirlines...)
	durationHours := 1 + s.rng.Intn(6) // 1..6h domestic
	if international {
		price += float64(200 + s.rng.Intn(601)) // +200..800
		durationHours = 6 + s.rng.Intn(11)      // 6..16h
	} else {
		pool = append(pool, regionalAirlines...)
	}

	depHour := 6 + s.rng.Intn(17) // 06..22
	depMin := 15 * s.rng.Intn(4)
	durMin := durationHours*60 + 15*s.rng.Intn(4)

	arrTotal := depHour*60 + depMin + durMin
	arrHour := (arrTotal / 60) % 24
	arrMin := arrTotal % 60

	return flightgraph.Offer{
		Origin:      origin,
		Destination: destination,
		Price:       price,
		Airline:     pool[s.rng.Intn(len(pool))],
		Date:        date,
		Departure:   fmt.Sprintf("%02d:%02d", depHour, depMin),
		Arrival:     fmt.Sprintf("%02d:%02d", arrHour, arrMin),
		DurationMin: durMin,
	}
}

// international reports whether the pair crosses a country border,
// defaulting to domestic when either airport is unknown.
func (s *Synthetic) international(origin, destination string) bool {
	if s.reg == nil {
		return false
	}
	from, err := s.reg.Lookup(origin)
	if err != nil {
		return false
	}
	to, err := s.reg.Lookup(destination)
	if err != nil {
		return false
	}

	return from.Country != to.Country
}

var _ Provider = (*Synthetic)(nil)
