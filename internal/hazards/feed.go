package hazards

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/observability"
)

// Extractor reads the next raw message from the feed topic, blocking until
// one arrives or the context is cancelled.
type Extractor interface {
	Extract(ctx context.Context) (RawMessage, error)
}

// Feed consumes hazard snapshot updates and applies them to the store.
type Feed struct {
	extractor Extractor
	store     *Store
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// NewFeed creates a Feed over the given source and store.
func NewFeed(extractor Extractor, store *Store, logger *slog.Logger, metrics *observability.Metrics) *Feed {
	return &Feed{
		extractor: extractor,
		store:     store,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one snapshot has been applied.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("hazard feed has not received a snapshot yet")
	}
	return nil
}

// Run consumes feed messages until the context is cancelled. Malformed
// messages are skipped; transient extract errors back off exponentially
// starting at 200ms and capping at 5s, so outages do not spin the loop.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("hazard feed started")
	f.metrics.FeedRunning.Set(1)
	defer f.metrics.FeedRunning.Set(0)

	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("hazard feed stopping", "reason", ctx.Err())
			return nil
		default:
		}

		msg, err := f.extractor.Extract(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			f.logger.Error("extract hazard update failed", "error", err)
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		f.apply(msg)
	}
}

// apply parses one message and swaps the store snapshot.
func (f *Feed) apply(msg RawMessage) {
	update, dropped, err := ParseUpdate(msg.Value)
	if err != nil {
		f.logger.Warn("malformed hazard update, skipping",
			"error", err,
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
		f.metrics.FeedErrors.Inc()
		return
	}

	if dropped > 0 {
		f.logger.Warn("dropped hazard segments with invalid coordinates",
			"dropped", dropped, "offset", msg.Offset)
		f.metrics.SegmentsRejected.Add(float64(dropped))
	}

	updatedAt := update.GeneratedAt
	if updatedAt.IsZero() {
		updatedAt = msg.Timestamp
	}

	f.store.Replace(update.Segments, updatedAt)
	f.metrics.SegmentsConsumed.Add(float64(len(update.Segments)))
	f.metrics.SnapshotSize.Set(float64(len(update.Segments)))
	f.ready.Store(true)

	f.logger.Debug("hazard snapshot applied",
		"segments", len(update.Segments), "generated_at", updatedAt)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
