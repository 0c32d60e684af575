package directions

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-route-advisor/internal/observability"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		key:        testKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    testMetrics(),
	}
}

func okResponse() response {
	return response{
		Status: "OK",
		Routes: []apiRoute{
			{
				Legs: []apiLeg{
					{
						StartAddress: "Houston, TX, USA",
						EndAddress:   "Austin, TX, USA",
						Distance:     textValue{Text: "165 mi"},
						Duration:     textValue{Text: "2 hours 30 mins"},
						Steps: []apiStep{
							{
								HTMLInstructions: "Head <b>west</b> on Main St",
								Distance:         textValue{Text: "0.3 mi"},
								Duration:         textValue{Text: "2 mins"},
								StartLocation:    latLng{Lat: 29.7604, Lng: -95.3698},
							},
							{
								HTMLInstructions: "Turn <b>left</b> onto TX-71",
								Distance:         textValue{Text: "80 mi"},
								Duration:         textValue{Text: "1 hour 10 mins"},
								StartLocation:    latLng{Lat: 29.9, Lng: -96.0},
							},
						},
					},
				},
			},
		},
	}
}

func TestClient_FetchRoute_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Houston", r.URL.Query().Get("origin"))
		assert.Equal(t, "Austin", r.URL.Query().Get("destination"))
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(okResponse()))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.FetchRoute(context.Background(), "Houston", "Austin")
	require.NoError(t, err)

	require.Len(t, got.Legs, 1)
	leg := got.Legs[0]
	assert.Equal(t, "Houston, TX, USA", leg.StartAddress)
	assert.Equal(t, "Austin, TX, USA", leg.EndAddress)
	assert.Equal(t, "165 mi", leg.Distance)
	require.Len(t, leg.Steps, 2)
	assert.Equal(t, "Head west on Main St", leg.Steps[0].Instruction)
	assert.Equal(t, "Turn left onto TX-71", leg.Steps[1].Instruction)
	assert.Equal(t, 29.7604, leg.Steps[0].Start.Lat)
	assert.Equal(t, -95.3698, leg.Steps[0].Start.Lng)
}

func TestClient_FetchRoute_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Status: "ZERO_RESULTS"}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.FetchRoute(context.Background(), "Nowhere", "Atlantis")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestClient_FetchRoute_RequestDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchRoute(context.Background(), "Houston", "Austin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestClient_FetchRoute_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchRoute(context.Background(), "Houston", "Austin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchRoute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.FetchRoute(context.Background(), "Houston", "Austin")
	require.Error(t, err)
}

func TestClient_FetchRoute_EmptyRoutesWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Status: "OK"}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.FetchRoute(context.Background(), "Houston", "Austin")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}
