// Package advisor orchestrates a route risk analysis: fetch the route,
// annotate each step against the hazard snapshot, and roll the nearby
// hazards up into a summary.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/risk"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// ErrEmptyQuery is returned when origin or destination is blank.
var ErrEmptyQuery = errors.New("origin and destination are required")

// ErrProviderUnavailable wraps failures of the routing provider.
var ErrProviderUnavailable = errors.New("routing provider unavailable")

// RouteProvider fetches a driving route between two free-text places.
type RouteProvider interface {
	FetchRoute(ctx context.Context, origin, destination string) (route.Route, error)
}

// HazardSource supplies the current hazard snapshot.
type HazardSource interface {
	Snapshot() []risk.HazardSegment
}

// RouteAnalysis is the result of one analysis request.
type RouteAnalysis struct {
	RouteFound bool               `json:"route_found"`
	Route      route.Route        `json:"route"`
	Steps      []route.Step       `json:"steps"`
	StepRisks  map[int]risk.Level `json:"step_risks"`
	Summary    risk.Summary       `json:"summary"`
}

// Service runs route risk analyses.
type Service struct {
	provider RouteProvider
	hazards  HazardSource
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an advisor service.
func New(provider RouteProvider, hazards HazardSource, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		hazards:  hazards,
		logger:   logger,
		metrics:  metrics,
	}
}

// AnalyzeRoute fetches a route and overlays the hazard snapshot on it.
//
// A provider failure is an error; a provider that finds no route is not —
// the caller gets RouteFound=false and the empty low-risk summary so it can
// render "no route found" instead of a failure.
func (s *Service) AnalyzeRoute(ctx context.Context, origin, destination string) (RouteAnalysis, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return RouteAnalysis{}, ErrEmptyQuery
	}

	start := time.Now()
	defer func() {
		s.metrics.RouteAnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	r, err := s.provider.FetchRoute(ctx, origin, destination)
	if err != nil {
		s.metrics.RouteAnalyses.WithLabelValues("provider_error").Inc()
		s.logger.Error("route fetch failed", "origin", origin, "destination", destination, "error", err)
		return RouteAnalysis{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if r.Empty() {
		s.metrics.RouteAnalyses.WithLabelValues("no_route").Inc()
		s.logger.Info("no route found", "origin", origin, "destination", destination)
		return RouteAnalysis{
			RouteFound: false,
			Steps:      []route.Step{},
			StepRisks:  map[int]risk.Level{},
			Summary:    risk.Summarize(nil),
		}, nil
	}

	steps := r.Steps()
	hazards := s.hazards.Snapshot()

	analysis := RouteAnalysis{
		RouteFound: true,
		Route:      r,
		Steps:      steps,
		StepRisks:  risk.AnnotateSteps(steps, hazards),
		Summary:    risk.Summarize(hazardsNearRoute(steps, hazards)),
	}

	s.metrics.RouteAnalyses.WithLabelValues("ok").Inc()
	s.logger.Info("route analyzed",
		"origin", origin,
		"destination", destination,
		"steps", len(steps),
		"risk_level", analysis.Summary.RiskLevel,
		"affected_segments", len(analysis.Summary.AffectedSegments),
	)
	return analysis, nil
}

// hazardsNearRoute filters the snapshot to hazards within the proximity
// radius of at least one step, preserving snapshot order.
func hazardsNearRoute(steps []route.Step, hazards []risk.HazardSegment) []risk.HazardSegment {
	var near []risk.HazardSegment
	for _, h := range hazards {
		for _, step := range steps {
			if geo.Distance(step.Start, h.Location) < risk.ProximityRadiusKm {
				near = append(near, h)
				break
			}
		}
	}
	return near
}
