// Package directions fetches driving routes from a Google-style Directions
// API and maps them into the service's route model.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// Client fetches driving directions over HTTP. It implements
// advisor.RouteProvider.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a directions client.
func NewClient(key string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://maps.googleapis.com/maps/api/directions/json",
		logger:  logger,
		metrics: metrics,
	}
}

// FetchRoute requests a driving route between two free-text places. A
// provider response of ZERO_RESULTS or NOT_FOUND returns an empty route and
// no error; any other non-OK status is an error.
func (c *Client) FetchRoute(ctx context.Context, origin, destination string) (route.Route, error) {
	params := url.Values{
		"origin":      {origin},
		"destination": {destination},
		"mode":        {"driving"},
		"key":         {c.key},
	}

	start := time.Now()
	result, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.DirectionsAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.DirectionsRequests.WithLabelValues("error").Inc()
	case result.Empty():
		c.metrics.DirectionsRequests.WithLabelValues("empty").Inc()
	default:
		c.metrics.DirectionsRequests.WithLabelValues("success").Inc()
	}
	return result, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (route.Route, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return route.Route{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return route.Route{}, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return route.Route{}, fmt.Errorf("directions API error: status %d: %s", resp.StatusCode, body)
	}

	var dirResp response
	if err := json.NewDecoder(resp.Body).Decode(&dirResp); err != nil {
		return route.Route{}, fmt.Errorf("decode response: %w", err)
	}

	switch dirResp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return route.Route{}, nil
	default:
		return route.Route{}, fmt.Errorf("directions API status %s: %s", dirResp.Status, dirResp.ErrorMessage)
	}

	if len(dirResp.Routes) == 0 {
		return route.Route{}, nil
	}

	return mapRoute(dirResp.Routes[0]), nil
}

// mapRoute converts the provider's first route into the service model.
// HTML markup in turn instructions is stripped here, at the boundary.
func mapRoute(r apiRoute) route.Route {
	out := route.Route{Legs: make([]route.Leg, len(r.Legs))}
	for i, leg := range r.Legs {
		steps := make([]route.Step, len(leg.Steps))
		for j, s := range leg.Steps {
			steps[j] = route.Step{
				Start:       geo.Coordinate{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
				Instruction: route.SanitizeInstruction(s.HTMLInstructions),
				Distance:    s.Distance.Text,
				Duration:    s.Duration.Text,
			}
		}
		out.Legs[i] = route.Leg{
			Steps:        steps,
			StartAddress: leg.StartAddress,
			EndAddress:   leg.EndAddress,
			Distance:     leg.Distance.Text,
			Duration:     leg.Duration.Text,
		}
	}
	return out
}

// Directions API response types.

type response struct {
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message"`
	Routes       []apiRoute `json:"routes"`
}

type apiRoute struct {
	Legs []apiLeg `json:"legs"`
}

type apiLeg struct {
	StartAddress string    `json:"start_address"`
	EndAddress   string    `json:"end_address"`
	Distance     textValue `json:"distance"`
	Duration     textValue `json:"duration"`
	Steps        []apiStep `json:"steps"`
}

type apiStep struct {
	HTMLInstructions string    `json:"html_instructions"`
	Distance         textValue `json:"distance"`
	Duration         textValue `json:"duration"`
	StartLocation    latLng    `json:"start_location"`
}

type textValue struct {
	Text string `json:"text"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
