package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/velmark/skyroute/flightgraph"
)

// LiveConfig configures the Live provider.
type LiveConfig struct {
	// BaseURL is the API root, e.g. "https://fly-scraper.example.com".
	BaseURL string

	// APIKey and APIHost fill the x-rapidapi-key / x-rapidapi-host headers.
	APIKey  string
	APIHost string

	// HTTPClient overrides http.DefaultClient when set.
	HTTPClient *http.Client

	// MaxRetries bounds retries per pair on 429/5xx responses. Default 2.
	MaxRetries int

	// RetryDelay is the base backoff between retries. Default 2s; the delay
	// doubles per attempt.
	RetryDelay time.Duration
}

// Live fetches flight offers from a remote pricing API, one origin/
// destination pair per request, keeping the cheapest flight per pair.
type Live struct {
	cfg LiveConfig
	now func() time.Time
}

// NewLive returns a Live provider for the given configuration.
func NewLive(cfg LiveConfig) *Live {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Live{cfg: cfg, now: time.Now}
}

// Name implements Provider.
func (l *Live) Name() string { return "live" }

// Offers implements Provider. Searches depart seven days from now, economy,
// one adult — mirroring the pricing defaults of the upstream API. A pair
// with no flights is skipped; a request failure aborts the whole call so a
// fallback provider can take over.
func (l *Live) Offers(ctx context.Context, origin string, destinations []string) ([]flightgraph.Offer, error) {
	date := l.now().AddDate(0, 0, 7).Format("2006-01-02")

	var out []flightgraph.Offer
	for _, destination := range destinations {
		offer, found, err := l.searchPair(ctx, origin, destination, date)
		if err != nil {
			return nil, errors.Wrapf(err, "live: search %s->%s", origin, destination)
		}
		if found {
			out = append(out, offer)
		}
	}

	return out, nil
}

// searchPair queries one origin/destination pair and returns the cheapest
// offer, retrying with doubling backoff on 429 and 5xx responses.
func (l *Live) searchPair(ctx context.Context, origin, destination, date string) (flightgraph.Offer, bool, error) {
	q := url.Values{
		"origin":      {strings.ToLower(origin)},
		"destination": {strings.ToLower(destination)},
		"date":        {date},
		"adults":      {"1"},
		"cabinClass":  {"economy"},
		"currency":    {"USD"},
	}
	endpoint := l.cfg.BaseURL + "/flights/search?" + q.Encode()

	delay := l.cfg.RetryDelay
	for attempt := 0; ; attempt++ {
		resp, retryable, err := l.doRequest(ctx, endpoint)
		if err == nil {
			offer, found := cheapestFromResponse(resp, origin, destination, date)

			return offer, found, nil
		}
		if !retryable || attempt >= l.cfg.MaxRetries {
			return flightgraph.Offer{}, false, err
		}

		select {
		case <-ctx.Done():
			return flightgraph.Offer{}, false, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// doRequest performs one HTTP round trip. The second return reports whether
// the failure is worth retrying (rate limit or server-side error).
func (l *Live) doRequest(ctx context.Context, endpoint string) (*apiResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "build request")
	}
	req.Header.Set("x-rapidapi-key", l.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", l.cfg.APIHost)

	resp, err := l.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrap(err, "round trip")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var parsed apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, false, errors.Wrap(err, "decode response")
		}

		return &parsed, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, errors.Errorf("rate limited (status %d)", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, true, errors.Errorf("server error (status %d)", resp.StatusCode)
	default:
		return nil, false, errors.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// apiResponse mirrors the subset of the upstream payload the provider
// reads. Field shapes vary between API versions, so price and duration are
// decoded leniently.
type apiResponse struct {
	Data struct {
		Flights []apiFlight `json:"flights"`
	} `json:"data"`
}

type apiFlight struct {
	Price      json.RawMessage `json:"price"`
	TotalPrice *float64        `json:"totalPrice"`
	Cost       *float64        `json:"cost"`
	Airline    string          `json:"airline"`
	Carrier    string          `json:"carrier"`
	Airlines   []string        `json:"airlines"`
	Departure  *apiPoint       `json:"departure"`
	Arrival    *apiPoint       `json:"arrival"`
	Duration   json.RawMessage `json:"duration"`
	TravelTime json.RawMessage `json:"travelTime"`
}

type apiPoint struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// cheapestFromResponse folds the response's flights into the single
// cheapest well-priced offer for the pair.
func cheapestFromResponse(resp *apiResponse, origin, destination, date string) (flightgraph.Offer, bool) {
	var best flightgraph.Offer
	found := false
	for _, f := range resp.Data.Flights {
		price, ok := f.price()
		if !ok || price <= 0 {
			continue
		}
		if found && price >= best.Price {
			continue
		}

		o := flightgraph.Offer{
			Origin:      origin,
			Destination: destination,
			Price:       price,
			Airline:     f.airline(),
			Date:        date,
			DurationMin: durationMinutes(f.Duration, f.TravelTime),
		}
		if f.Departure != nil {
			o.Departure = f.Departure.Time
			if f.Departure.Date != "" {
				o.Date = f.Departure.Date
			}
		}
		if f.Arrival != nil {
			o.Arrival = f.Arrival.Time
		}
		best, found = o, true
	}

	return best, found
}

// price extracts the fare from whichever field the API populated:
// "price" as a bare number, "price" as {"amount": n}, "totalPrice", "cost".
func (f apiFlight) price() (float64, bool) {
	if len(f.Price) > 0 {
		var n float64
		if err := json.Unmarshal(f.Price, &n); err == nil {
			return n, true
		}
		var wrapped struct {
			Amount float64 `json:"amount"`
		}
		if err := json.Unmarshal(f.Price, &wrapped); err == nil && wrapped.Amount != 0 {
			return wrapped.Amount, true
		}
	}
	if f.TotalPrice != nil {
		return *f.TotalPrice, true
	}
	if f.Cost != nil {
		return *f.Cost, true
	}

	return 0, false
}

// airline picks the first populated carrier field.
func (f apiFlight) airline() string {
	switch {
	case f.Airline != "":
		return f.Airline
	case f.Carrier != "":
		return f.Carrier
	case len(f.Airlines) > 0:
		return f.Airlines[0]
	default:
		return "Unknown"
	}
}

// durationMinutes decodes a duration that may arrive as a bare number of
// minutes or as a string like "7h 30m", trying "duration" before
// "travelTime". Unparsable values yield zero.
func durationMinutes(raw, alt json.RawMessage) int {
	for _, candidate := range []json.RawMessage{raw, alt} {
		if len(candidate) == 0 {
			continue
		}
		var n float64
		if err := json.Unmarshal(candidate, &n); err == nil {
			return int(n)
		}
		var s string
		if err := json.Unmarshal(candidate, &s); err == nil {
			if m, ok := parseClockDuration(s); ok {
				return m
			}
		}
	}

	return 0
}

// parseClockDuration parses "7h 30m", "7h", or "45m" into minutes.
func parseClockDuration(s string) (int, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, false
	}
	total := 0
	matched := false
	for _, part := range strings.Fields(s) {
		switch {
		case strings.HasSuffix(part, "h"):
			if h, err := strconv.Atoi(strings.TrimSuffix(part, "h")); err == nil {
				total += h * 60
				matched = true
			}
		case strings.HasSuffix(part, "m"):
			if m, err := strconv.Atoi(strings.TrimSuffix(part, "m")); err == nil {
				total += m
				matched = true
			}
		}
	}
	if !matched {
		return 0, false
	}

	return total, true
}

var _ Provider = (*Live)(nil)
