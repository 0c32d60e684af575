package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/flood-route-advisor/internal/adapter/directions"
	httpadapter "github.com/couchcryptid/flood-route-advisor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flood-route-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/flood-route-advisor/internal/advisor"
	"github.com/couchcryptid/flood-route-advisor/internal/assist"
	"github.com/couchcryptid/flood-route-advisor/internal/chat"
	"github.com/couchcryptid/flood-route-advisor/internal/config"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
	"github.com/couchcryptid/flood-route-advisor/internal/observability"
	"github.com/couchcryptid/flood-route-advisor/internal/route"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := hazards.NewStore()

	// Routing provider (feature-flagged via DIRECTIONS_ENABLED / DIRECTIONS_API_KEY).
	var provider advisor.RouteProvider
	if cfg.DirectionsEnabled {
		client := directions.NewClient(cfg.DirectionsAPIKey, cfg.DirectionsTimeout, logger, metrics)
		provider = directions.NewCachedProvider(client, cfg.DirectionsCacheSize, metrics)
		metrics.DirectionsEnabled.Set(1)
		logger.Info("routing provider enabled", "cache_size", cfg.DirectionsCacheSize, "timeout", cfg.DirectionsTimeout)
	} else {
		provider = disabledProvider{}
		logger.Info("routing provider disabled")
	}

	svc := advisor.New(provider, store, logger, metrics)
	chats := chat.NewManager(assist.NewClassifier(), cfg.ChatReplyDelay, cfg.ChatQueueSize, nil, logger)

	var ready httpadapter.ReadinessChecker = alwaysReady{}
	var reader *kafkaadapter.Reader
	var feed *hazards.Feed
	if cfg.HazardFeedEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		feed = hazards.NewFeed(reader, store, logger, metrics)
		ready = feed
	} else {
		logger.Info("hazard feed disabled, snapshot will stay empty")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, chats, store, ready, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return chats.Run(gctx)
	})

	if feed != nil {
		g.Go(func() error {
			return feed.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		if reader != nil {
			if err := reader.Close(); err != nil {
				logger.Error("kafka reader close error", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// disabledProvider stands in when no routing API key is configured. Route
// analysis requests fail as provider-unavailable instead of silently
// returning empty routes.
type disabledProvider struct{}

func (disabledProvider) FetchRoute(_ context.Context, _, _ string) (route.Route, error) {
	return route.Route{}, errors.New("routing provider disabled")
}

// alwaysReady reports ready when the hazard feed is disabled.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(_ context.Context) error { return nil }
