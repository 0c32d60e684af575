// Package http exposes the advisor's API: chat, route analysis, the hazard
// snapshot, and the usual health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flood-route-advisor/internal/advisor"
	"github.com/couchcryptid/flood-route-advisor/internal/chat"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/risk"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the advisor HTTP API.
type Server struct {
	httpServer *http.Server
	advisor    *advisor.Service
	chats      *chat.Manager
	store      *hazards.Store
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires the API routes onto a ServeMux.
func NewServer(addr string, svc *advisor.Service, chats *chat.Manager, store *hazards.Store, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		advisor: svc,
		chats:   chats,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("POST /v1/chat", s.handleChat)
	mux.HandleFunc("POST /v1/route", s.handleRoute)
	mux.HandleFunc("GET /v1/hazards", s.handleHazards)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Intent    string `json:"intent"`
	Category  string `json:"category"`
	Reply     string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.chats.Open(req.SessionID)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	start := time.Now()
	replies, err := session.Submit(req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, chat.ErrSessionBusy):
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	select {
	case <-r.Context().Done():
		return
	case reply := <-replies:
		s.metrics.ChatMessages.WithLabelValues(reply.Intent, string(reply.Category)).Inc()
		s.metrics.ChatReplyLatency.Observe(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, chatResponse{
			SessionID: session.ID(),
			Intent:    reply.Intent,
			Category:  string(reply.Category),
			Reply:     reply.Body,
		})
	}
}

type routeRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type routeResponse struct {
	RouteFound bool         `json:"route_found"`
	Legs       []legView    `json:"legs"`
	Steps      []stepView   `json:"steps"`
	Summary    risk.Summary `json:"summary"`
}

type legView struct {
	StartAddress string `json:"start_address"`
	EndAddress   string `json:"end_address"`
	Distance     string `json:"distance"`
	Duration     string `json:"duration"`
}

type stepView struct {
	route.Step
	RiskLevel risk.Level `json:"risk_level"`
	Icon      string     `json:"icon"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	analysis, err := s.advisor.AnalyzeRoute(r.Context(), req.Origin, req.Destination)
	switch {
	case errors.Is(err, advisor.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, advisor.ErrProviderUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mapAnalysis(analysis))
}

// mapAnalysis flattens an analysis into the wire shape, attaching the
// per-step risk level and direction icon hint the frontend renders.
func mapAnalysis(analysis advisor.RouteAnalysis) routeResponse {
	legs := make([]legView, len(analysis.Route.Legs))
	for i, leg := range analysis.Route.Legs {
		legs[i] = legView{
			StartAddress: leg.StartAddress,
			EndAddress:   leg.EndAddress,
			Distance:     leg.Distance,
			Duration:     leg.Duration,
		}
	}

	steps := make([]stepView, len(analysis.Steps))
	for i, step := range analysis.Steps {
		steps[i] = stepView{
			Step:      step,
			RiskLevel: analysis.StepRisks[step.Index],
			Icon:      route.IconClass(step.Instruction),
		}
	}

	return routeResponse{
		RouteFound: analysis.RouteFound,
		Legs:       legs,
		Steps:      steps,
		Summary:    analysis.Summary,
	}
}

type hazardsResponse struct {
	UpdatedAt time.Time            `json:"updated_at"`
	Segments  []risk.HazardSegment `json:"segments"`
}

func (s *Server) handleHazards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, hazardsResponse{
		UpdatedAt: s.store.UpdatedAt(),
		Segments:  s.store.Snapshot(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
