package airport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names required in an OurAirports-format CSV header.
const (
	colIATA      = "iata_code"
	colName      = "name"
	colCity      = "municipality"
	colCountry   = "iso_country"
	colScheduled = "scheduled_service"
	colLat       = "latitude_deg"
	colLon       = "longitude_deg"
)

// LoadCSV reads an OurAirports-format airport dataset and builds a Registry
// containing only airports with scheduled commercial service and a valid
// IATA code. Codes are trimmed and uppercased before validation; rows whose
// cleaned code still fails ValidCode are skipped rather than rejected, since
// the upstream dataset carries a handful of placeholder codes.
//
// Coordinates are optional: rows with unparsable latitude/longitude keep
// zero values instead of failing the load.
//
// The dataset occasionally repeats an IATA code across scheduled-service
// rows; duplicates resolve last-wins, the later row replacing the earlier
// one.
func LoadCSV(r io.Reader) (*Registry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // header decides; the dataset has trailing optional columns

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "airport: read csv header")
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Airport
	position := make(map[string]int) // code -> index in records, for last-wins dedupe
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrBadRecord, "csv: %v", err)
		}

		if field(row, idx[colScheduled]) != "yes" {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(field(row, idx[colIATA])))
		if !ValidCode(code) {
			continue
		}

		lat, _ := strconv.ParseFloat(field(row, idx[colLat]), 64)
		lon, _ := strconv.ParseFloat(field(row, idx[colLon]), 64)
		a := Airport{
			Code:         code,
			Name:         field(row, idx[colName]),
			Municipality: field(row, idx[colCity]),
			Country:      field(row, idx[colCountry]),
			Lat:          lat,
			Lon:          lon,
		}
		if i, dup := position[code]; dup {
			records[i] = a

			continue
		}
		position[code] = len(records)
		records = append(records, a)
	}

	return NewRegistry(records)
}

// columnIndex maps each required column name to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, want := range []string{colIATA, colName, colCity, colCountry, colScheduled, colLat, colLon} {
		if _, ok := idx[want]; !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "%q", want)
		}
	}

	return idx, nil
}

// field returns row[i] trimmed, or "" when the row is shorter than i+1.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
