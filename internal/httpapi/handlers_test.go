package httpapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/flightgraph"
	"github.com/velmark/skyroute/internal/httpapi"
	"github.com/velmark/skyroute/internal/obs"
	"github.com/velmark/skyroute/route"
)

// newTestRouter builds a router over a three-airport network where
// JFK->LHR costs 600 direct but 400 via BOS.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	reg, err := airport.NewRegistry([]airport.Airport{
		{Code: "JFK", Name: "John F Kennedy International", Country: "US"},
		{Code: "BOS", Name: "Logan International", Country: "US"},
		{Code: "LHR", Name: "London Heathrow", Country: "GB"},
		{Code: "SFO", Name: "San Francisco International", Country: "US"},
	})
	require.NoError(t, err)

	g := flightgraph.NewGraph()
	for _, o := range []flightgraph.Offer{
		{Origin: "JFK", Destination: "LHR", Price: 600, Airline: "British Airways"},
		{Origin: "JFK", Destination: "BOS", Price: 150, Airline: "JetBlue Airways"},
		{Origin: "BOS", Destination: "LHR", Price: 250, Airline: "Delta Air Lines"},
	} {
		require.NoError(t, g.AddOffer(o))
	}

	metrics := obs.NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := httpapi.NewHandler(route.NewPlanner(reg, g), reg, metrics)

	return httpapi.NewRouter(h, metrics, logger)
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestRoute_ConnectingBeatsExpensiveDirect(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=JFK&destination=LHR")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Origin      string          `json:"origin"`
		Destination string          `json:"destination"`
		Itinerary   route.Itinerary `json:"itinerary"`
		Summary     string          `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "JFK", body.Origin)
	assert.Equal(t, "LHR", body.Destination)
	assert.False(t, body.Itinerary.Direct)
	assert.Equal(t, 400.0, body.Itinerary.TotalCost)
	assert.Equal(t, 1, body.Itinerary.Stops)
	assert.Contains(t, body.Summary, "JFK -> BOS -> LHR")
}

func TestRoute_LowercaseInputAccepted(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=jfk&destination=lhr")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoute_UnknownAirportIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=JFK&destination=ZZZ")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "ZZZ")
	assert.NotEmpty(t, body.Meta["request_id"])
}

func TestRoute_MalformedCodeIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=J1K&destination=LHR")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "J1K")
}

func TestRoute_SameEndpointsIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=JFK&destination=jfk")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoute_MissingParamsIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/route?origin=JFK")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoute_NoRouteIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	// SFO is registered but no offer departs it.
	rec := get(t, router, "/v1/route?origin=SFO&destination=LHR")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAirports_ListsSortedCodes(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/v1/airports")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int      `json:"count"`
		Airports []string `json:"airports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, []string{"BOS", "JFK", "LHR", "SFO"}, body.Airports)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	router := newTestRouter(t)

	get(t, router, "/v1/route?origin=JFK&destination=LHR")
	rec := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skyroute_requests_total 1")
	assert.Contains(t, rec.Body.String(), `skyroute_outcomes_total{outcome="connecting"} 1`)
}
