package airport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmark/skyroute/airport"
)

func TestRegistry_LookupKnown(t *testing.T) {
	reg, err := airport.NewRegistry([]airport.Airport{
		{Code: "JFK", Name: "John F Kennedy International Airport", Country: "US"},
		{Code: "LHR", Name: "London Heathrow Airport", Country: "GB"},
	})
	require.NoError(t, err)

	a, err := reg.Lookup("JFK")
	require.NoError(t, err)
	assert.Equal(t, "John F Kennedy International Airport", a.Name)
	assert.Equal(t, "US", a.Country)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg, err := airport.NewRegistry([]airport.Airport{{Code: "JFK"}})
	require.NoError(t, err)

	_, err = reg.Lookup("ZZZ")
	require.ErrorIs(t, err, airport.ErrUnknownAirport)
	assert.False(t, reg.Has("ZZZ"))
}

func TestNewRegistry_RejectsBadCode(t *testing.T) {
	for _, code := range []string{"", "JF", "JFKX", "jfk", "J1K"} {
		_, err := airport.NewRegistry([]airport.Airport{{Code: code}})
		assert.ErrorIs(t, err, airport.ErrBadCode, "code %q", code)
	}
}

func TestRegistry_LookupMalformedCode(t *testing.T) {
	reg, err := airport.NewRegistry([]airport.Airport{{Code: "JFK"}})
	require.NoError(t, err)

	for _, code := range []string{"", "JF", "JFKX", "jfk", "J1K"} {
		_, err := reg.Lookup(code)
		assert.ErrorIs(t, err, airport.ErrBadCode, "code %q", code)
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := airport.NewRegistry([]airport.Airport{{Code: "JFK"}, {Code: "JFK"}})
	require.ErrorIs(t, err, airport.ErrBadRecord)
}

func TestRegistry_CodesSorted(t *testing.T) {
	reg, err := airport.NewRegistry([]airport.Airport{
		{Code: "LHR"}, {Code: "BOS"}, {Code: "JFK"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"BOS", "JFK", "LHR"}, reg.Codes())
	assert.Equal(t, 3, reg.Len())
}

const sampleCSV = `id,ident,type,name,latitude_deg,longitude_deg,elevation_ft,continent,iso_country,iso_region,municipality,scheduled_service,iata_code
3797,KJFK,large_airport,John F Kennedy International Airport,40.6399,-73.7787,13,NA,US,US-NY,New York,yes,JFK
2434,EGLL,large_airport,London Heathrow Airport,51.4706,-0.4619,83,EU,GB,GB-ENG,London,yes, lhr
3622,KBOS,large_airport,Logan International Airport,42.3643,-71.0052,20,NA,US,US-MA,Boston,yes,BOS
9999,XXXX,small_airport,No Service Field,10.0,10.0,5,NA,US,US-TX,Nowhere,no,NSF
9998,YYYY,heliport,Bad Code Pad,11.0,11.0,5,NA,US,US-TX,Nowhere,yes,H3L
9997,ZZZZ,closed,Empty Code Strip,12.0,12.0,5,NA,US,US-TX,Nowhere,yes,
`

func TestLoadCSV_FiltersAndNormalizes(t *testing.T) {
	reg, err := airport.LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Only the three scheduled-service rows with valid IATA codes survive.
	assert.Equal(t, []string{"BOS", "JFK", "LHR"}, reg.Codes())

	// " lhr" is trimmed and uppercased.
	a, err := reg.Lookup("LHR")
	require.NoError(t, err)
	assert.Equal(t, "London Heathrow Airport", a.Name)
	assert.Equal(t, "GB", a.Country)
	assert.InDelta(t, 51.4706, a.Lat, 1e-9)
}

func TestLoadCSV_DuplicateCodeLastWins(t *testing.T) {
	// The upstream dataset occasionally repeats an IATA code; the load must
	// keep the later row instead of failing.
	const dupCSV = `id,ident,type,name,latitude_deg,longitude_deg,elevation_ft,continent,iso_country,iso_region,municipality,scheduled_service,iata_code
1,AAAA,large_airport,Old Kennedy Record,40.0,-73.0,13,NA,US,US-NY,New York,yes,JFK
2,EGLL,large_airport,London Heathrow Airport,51.4706,-0.4619,83,EU,GB,GB-ENG,London,yes,LHR
3,KJFK,large_airport,John F Kennedy International Airport,40.6399,-73.7787,13,NA,US,US-NY,New York,yes,JFK
`

	reg, err := airport.LoadCSV(strings.NewReader(dupCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"JFK", "LHR"}, reg.Codes())

	a, err := reg.Lookup("JFK")
	require.NoError(t, err)
	assert.Equal(t, "John F Kennedy International Airport", a.Name)
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	_, err := airport.LoadCSV(strings.NewReader("id,name\n1,Somewhere\n"))
	require.ErrorIs(t, err, airport.ErrMissingColumn)
}
