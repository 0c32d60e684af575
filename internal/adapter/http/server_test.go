package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/flood-route-advisor/internal/adapter/http"
	"github.com/couchcryptid/flood-route-advisor/internal/advisor"
	"github.com/couchcryptid/flood-route-advisor/internal/assist"
	"github.com/couchcryptid/flood-route-advisor/internal/chat"
	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/risk"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

// --- mocks ---

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type stubProvider struct {
	result route.Route
	err    error
}

func (p *stubProvider) FetchRoute(_ context.Context, _, _ string) (route.Route, error) {
	return p.result, p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	srv    *httpadapter.Server
	store  *hazards.Store
	cancel context.CancelFunc
}

func newTestServer(t *testing.T, provider advisor.RouteProvider, readyErr error) *testServer {
	t.Helper()

	metrics := observability.NewMetricsForTesting()
	store := hazards.NewStore()
	svc := advisor.New(provider, store, discardLogger(), metrics)

	// Zero reply delay keeps chat handler tests synchronous.
	chats := chat.NewManager(assist.NewClassifier(), 0, 4, nil, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go chats.Run(ctx) //nolint:errcheck
	require.Eventually(t, func() bool {
		_, err := chats.Open("probe")
		return err == nil
	}, time.Second, 5*time.Millisecond)
	t.Cleanup(cancel)

	srv := httpadapter.NewServer(":0", svc, chats, store, &mockReadiness{err: readyErr}, discardLogger(), metrics)
	return &testServer{srv: srv, store: store, cancel: cancel}
}

func doJSON(ts *testServer, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	ts.srv.ServeHTTP(rec, req)
	return rec
}

// --- health and readiness ---

func TestHealthzReturns200(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, fmt.Errorf("no snapshot yet"))
	rec := doJSON(ts, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Contains(t, body["error"], "no snapshot yet")
}

func TestMetricsEndpointExists(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- chat ---

func TestChat_ClassifiesAndReplies(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/chat", `{"message": "is this road flooded"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "flooded road", body["intent"])
	assert.Equal(t, "navigation", body["category"])
	assert.NotEmpty(t, body["reply"])
	assert.NotEmpty(t, body["session_id"])
}

func TestChat_ReusesSession(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)

	rec := doJSON(ts, http.MethodPost, "/v1/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var first map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doJSON(ts, http.MethodPost, "/v1/chat",
		fmt.Sprintf(`{"session_id": %q, "message": "thank you"}`, first["session_id"]))
	require.Equal(t, http.StatusOK, rec.Code)
	var second map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first["session_id"], second["session_id"])
	assert.Equal(t, "thank", second["intent"])
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/chat", `{"message": "   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_InvalidJSONRejected(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/chat", `{nope`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_EmergencyOverride(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/chat", `{"message": "I think someone is drowning"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "emergency", body["intent"])
}

// --- route analysis ---

func floodedRoute() route.Route {
	return route.Route{Legs: []route.Leg{{
		StartAddress: "Houston, TX, USA",
		EndAddress:   "Austin, TX, USA",
		Distance:     "165 mi",
		Duration:     "2 hours 30 mins",
		Steps: []route.Step{
			{Start: geo.Coordinate{Lat: 29.7604, Lng: -95.3698}, Instruction: "Head west on Main St"},
			{Start: geo.Coordinate{Lat: 30.2672, Lng: -97.7431}, Instruction: "Turn left onto Congress Ave"},
		},
	}}}
}

func TestRoute_AnalyzesAgainstSnapshot(t *testing.T) {
	ts := newTestServer(t, &stubProvider{result: floodedRoute()}, nil)
	ts.store.Replace([]risk.HazardSegment{
		{
			Location:   geo.Coordinate{Lat: 29.76076, Lng: -95.3698}, // ~40m from step 0
			RiskScore:  0.85,
			RiskLevel:  risk.LevelHigh,
			KeyFactors: []string{"heavy rainfall"},
		},
	}, time.Now())

	rec := doJSON(ts, http.MethodPost, "/v1/route", `{"origin": "Houston", "destination": "Austin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RouteFound bool `json:"route_found"`
		Legs       []struct {
			StartAddress string `json:"start_address"`
		} `json:"legs"`
		Steps []struct {
			Instruction string `json:"instruction"`
			RiskLevel   string `json:"risk_level"`
			Icon        string `json:"icon"`
		} `json:"steps"`
		Summary struct {
			RiskLevel  string `json:"risk_level"`
			BadgeClass string `json:"badge_class"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.RouteFound)
	require.Len(t, body.Legs, 1)
	assert.Equal(t, "Houston, TX, USA", body.Legs[0].StartAddress)
	require.Len(t, body.Steps, 2)
	assert.Equal(t, "high", body.Steps[0].RiskLevel)
	assert.Equal(t, "low", body.Steps[1].RiskLevel)
	assert.Equal(t, "fas fa-arrow-left", body.Steps[1].Icon)
	assert.Equal(t, "high", body.Summary.RiskLevel)
	assert.Equal(t, "bg-danger", body.Summary.BadgeClass)
}

func TestRoute_NoRouteFound(t *testing.T) {
	ts := newTestServer(t, &stubProvider{result: route.Route{}}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/route", `{"origin": "Nowhere", "destination": "Atlantis"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RouteFound bool `json:"route_found"`
		Summary    struct {
			RiskLevel string `json:"risk_level"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.RouteFound)
	assert.Equal(t, "low", body.Summary.RiskLevel)
}

func TestRoute_MissingFieldsRejected(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/route", `{"origin": "Houston"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoute_ProviderFailureIs502(t *testing.T) {
	ts := newTestServer(t, &stubProvider{err: errors.New("connection refused")}, nil)
	rec := doJSON(ts, http.MethodPost, "/v1/route", `{"origin": "Houston", "destination": "Austin"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// --- hazards snapshot ---

func TestHazards_ReturnsSnapshot(t *testing.T) {
	ts := newTestServer(t, &stubProvider{}, nil)
	updated := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ts.store.Replace([]risk.HazardSegment{
		{Location: geo.Coordinate{Lat: 29.76, Lng: -95.36}, RiskScore: 0.85, RiskLevel: risk.LevelHigh},
	}, updated)

	rec := doJSON(ts, http.MethodGet, "/v1/hazards", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UpdatedAt time.Time `json:"updated_at"`
		Segments  []struct {
			RiskLevel string  `json:"risk_level"`
			RiskScore float64 `json:"risk_score"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, updated, body.UpdatedAt)
	require.Len(t, body.Segments, 1)
	assert.Equal(t, "high", body.Segments[0].RiskLevel)
	assert.Equal(t, 0.85, body.Segments[0].RiskScore)
}
