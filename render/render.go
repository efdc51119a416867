// Package render formats itineraries for terminal output.
//
// Text writes a leg-by-leg table followed by a totals line; Summary
// produces the compact one-line form used in logs and API messages.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/route"
)

// Text writes it to w as a human-readable table. The registry resolves
// airport names for the header; it may be nil, in which case only codes
// are shown.
func Text(w io.Writer, it route.Itinerary, reg *airport.Registry) error {
	if len(it.Legs) == 0 {
		_, err := fmt.Fprintln(w, "no itinerary")
		return errors.Wrap(err, "render")
	}

	origin := it.Legs[0].Origin
	destination := it.Legs[len(it.Legs)-1].Destination
	if _, err := fmt.Fprintf(w, "%s -> %s (%s)\n\n", describe(reg, origin), describe(reg, destination), kind(it)); err != nil {
		return errors.Wrap(err, "render")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEG\tFROM\tTO\tAIRLINE\tDEPART\tARRIVE\tDURATION\tPRICE")
	for i, leg := range it.Legs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t$%.2f\n",
			i+1, leg.Origin, leg.Destination, leg.Airline,
			leg.Departure, leg.Arrival, duration(leg.DurationMin), leg.Price,
		)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "render")
	}

	_, err := fmt.Fprintf(w, "\nTotal: $%.2f, %d stop(s)\n", it.TotalCost, it.Stops)

	return errors.Wrap(err, "render")
}

// Summary returns the one-line form, e.g.
// "JFK -> BOS -> LHR for $400.00 with 1 stop(s) [connecting]".
func Summary(it route.Itinerary) string {
	if len(it.Legs) == 0 {
		return "no itinerary"
	}

	return fmt.Sprintf("%s for $%.2f with %d stop(s) [%s]",
		strings.Join(it.Route(), " -> "), it.TotalCost, it.Stops, kind(it))
}

func kind(it route.Itinerary) string {
	if it.Direct {
		return "direct"
	}

	return "connecting"
}

// describe renders "JFK" or "JFK (John F Kennedy International)" when the
// registry knows the airport.
func describe(reg *airport.Registry, code string) string {
	if reg == nil {
		return code
	}
	a, err := reg.Lookup(code)
	if err != nil || a.Name == "" {
		return code
	}

	return fmt.Sprintf("%s (%s)", code, a.Name)
}

// duration formats minutes as "7h 45m", "45m" below an hour.
func duration(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
