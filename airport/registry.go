// Package airport provides the immutable airport reference registry.
//
// A Registry is built once from a finite set of airport records (for
// example the OurAirports dataset via LoadCSV) and is read-only for the
// rest of the session, so it may be shared freely across concurrent
// route queries without locking.
//
// Errors:
//
//	ErrUnknownAirport - lookup code is not present in the registry.
//	ErrBadCode        - code is not three uppercase ASCII letters.
//	ErrBadRecord      - a CSV row could not be parsed into an Airport.
//	ErrMissingColumn  - the CSV header lacks a required column.
package airport

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for registry construction and lookup.
var (
	// ErrUnknownAirport indicates the requested IATA code is absent from the registry.
	ErrUnknownAirport = errors.New("airport: unknown airport code")

	// ErrBadCode indicates a code that is not exactly three uppercase ASCII letters.
	ErrBadCode = errors.New("airport: code must be three uppercase letters")

	// ErrBadRecord indicates a malformed row in the source dataset.
	ErrBadRecord = errors.New("airport: malformed airport record")

	// ErrMissingColumn indicates the dataset header lacks a required column.
	ErrMissingColumn = errors.New("airport: required column missing from header")
)

// Airport is a single airport reference record. Records are immutable once
// loaded; components reference airports by Code rather than copying records.
type Airport struct {
	// Code is the IATA identifier: three uppercase ASCII letters, unique per registry.
	Code string

	// Name is the official airport name.
	Name string

	// Municipality is the city the airport serves, when known.
	Municipality string

	// Country is the ISO 3166-1 alpha-2 country code.
	Country string

	// Lat and Lon are the airport coordinates in decimal degrees.
	Lat, Lon float64
}

// Registry is an immutable lookup of airports keyed by IATA code.
type Registry struct {
	byCode map[string]Airport
}

// NewRegistry builds a Registry from the given records.
// Every record's code must pass ValidCode; a duplicate code is rejected so
// that a registry never silently shadows one airport with another.
//
// Complexity: O(n) over the input slice.
func NewRegistry(records []Airport) (*Registry, error) {
	byCode := make(map[string]Airport, len(records))
	for _, a := range records {
		if !ValidCode(a.Code) {
			return nil, fmt.Errorf("%w: %q", ErrBadCode, a.Code)
		}
		if _, dup := byCode[a.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrBadRecord, a.Code)
		}
		byCode[a.Code] = a
	}

	return &Registry{byCode: byCode}, nil
}

// Lookup returns the airport for the given IATA code.
// It returns ErrBadCode when code is not three uppercase ASCII letters,
// and ErrUnknownAirport when a well-formed code is not registered.
//
// Complexity: O(1)
func (r *Registry) Lookup(code string) (Airport, error) {
	if !ValidCode(code) {
		return Airport{}, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	a, ok := r.byCode[code]
	if !ok {
		return Airport{}, fmt.Errorf("%w: %q", ErrUnknownAirport, code)
	}

	return a, nil
}

// Has reports whether code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.byCode[code]
	return ok
}

// Codes returns all registered IATA codes in ascending order.
//
// Complexity: O(n log n)
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		out = append(out, code)
	}
	sort.Strings(out)

	return out
}

// Len returns the number of registered airports.
func (r *Registry) Len() int { return len(r.byCode) }

// ValidCode reports whether code is exactly three uppercase ASCII letters.
func ValidCode(code string) bool {
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
