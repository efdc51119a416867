// Package httpapi exposes the route planner over HTTP.
//
// GET /v1/route?origin=JFK&destination=LHR returns the selected itinerary
// as JSON; /healthz and /metrics serve liveness and Prometheus exposition.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/velmark/skyroute/airport"
	"github.com/velmark/skyroute/internal/obs"
	"github.com/velmark/skyroute/pathfind"
	"github.com/velmark/skyroute/render"
	"github.com/velmark/skyroute/route"
)

// Handler answers route planning requests against a prepared Planner.
type Handler struct {
	planner *route.Planner
	reg     *airport.Registry
	metrics *obs.Metrics
}

func NewHandler(planner *route.Planner, reg *airport.Registry, m *obs.Metrics) *Handler {
	return &Handler{planner: planner, reg: reg, metrics: m}
}

// routeResponse is the wire form of a planned itinerary.
type routeResponse struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Itinerary   route.Itinerary `json:"itinerary"`
	Summary     string          `json:"summary"`
}

func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRouteRequests()

	reqID := r.Header.Get("X-Request-Id")
	if reqID == "" {
		if v, ok := r.Context().Value(middleware.RequestIDKey).(string); ok && v != "" {
			reqID = v
		} else {
			reqID = uuid.New().String()
		}
	}
	meta := map[string]string{"request_id": reqID}

	q := r.URL.Query()
	origin, destination := q.Get("origin"), q.Get("destination")
	if origin == "" || destination == "" {
		h.metrics.IncOutcome("error")
		BadRequest(w, "origin and destination query parameters are required", meta)

		return
	}

	start := time.Now()
	it, err := h.planner.Plan(origin, destination)
	h.metrics.ObservePlanDuration(time.Since(start).Seconds())

	switch {
	case err == nil:
		h.metrics.IncOutcome(outcome(it))
		WriteJSON(w, http.StatusOK, routeResponse{
			Origin:      it.Legs[0].Origin,
			Destination: it.Legs[len(it.Legs)-1].Destination,
			Itinerary:   it,
			Summary:     render.Summary(it),
		})
	case errors.Is(err, pathfind.ErrNoRoute):
		h.metrics.IncOutcome("no_route")
		NotFound(w, err.Error(), meta)
	case errors.Is(err, airport.ErrUnknownAirport),
		errors.Is(err, airport.ErrBadCode),
		errors.Is(err, route.ErrSameEndpoints):
		h.metrics.IncOutcome("error")
		BadRequest(w, err.Error(), meta)
	default:
		h.metrics.IncOutcome("error")
		InternalError(w, err.Error(), meta)
	}
}

func outcome(it route.Itinerary) string {
	if it.Direct {
		return "direct"
	}

	return "connecting"
}

// Airports lists the registry's codes so clients can validate input
// without a round trip per keystroke.
func (h *Handler) Airports(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"count":    h.reg.Len(),
		"airports": h.reg.Codes(),
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
