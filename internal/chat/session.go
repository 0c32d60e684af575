// Package chat sequences assistant exchanges for a single page session.
//
// The classifier itself is synchronous and pure; the only asynchronous part
// is a simulated "thinking" delay before each reply. Submissions are
// serialized through a single-worker FIFO queue, so replies are always
// delivered in submission order even under rapid consecutive input — the
// fire-and-forget timer races this design replaces cannot reorder them.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/assist"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrEmptyMessage rejects empty or whitespace-only submissions before queuing.
	ErrEmptyMessage = errors.New("empty chat message")

	// ErrSessionBusy is returned when the submission queue is full.
	ErrSessionBusy = errors.New("chat session queue is full")
)

// Reply is one assistant answer, delivered after the simulated typing delay.
type Reply struct {
	Intent   string          `json:"intent"`
	Category assist.Category `json:"category"`
	Body     string          `json:"body"`
}

// Classifier maps user text to an intent.
type Classifier interface {
	Classify(text string) assist.Intent
}

// Session serializes chat exchanges for one user session.
// Submissions queue up and are answered strictly in order by Run.
type Session struct {
	id         string
	classifier Classifier
	delay      time.Duration
	clock      clockwork.Clock
	queue      chan submission
	busy       atomic.Bool
}

type submission struct {
	text string
	out  chan Reply
}

// NewSession creates a session with the given reply delay and queue capacity.
// A nil clock means the real clock.
func NewSession(id string, classifier Classifier, delay time.Duration, queueSize int, clock clockwork.Clock) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Session{
		id:         id,
		classifier: classifier,
		delay:      delay,
		clock:      clock,
		queue:      make(chan submission, queueSize),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Busy reports whether a reply is pending. Advisory only: the UI uses it to
// disable its input field, but Submit stays safe under concurrent calls.
func (s *Session) Busy() bool { return s.busy.Load() }

// Submit enqueues user text for classification without blocking. The
// returned channel receives exactly one Reply once Run has processed the
// submission, in FIFO order relative to other submissions.
func (s *Session) Submit(text string) (<-chan Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	sub := submission{text: text, out: make(chan Reply, 1)}
	select {
	case s.queue <- sub:
		return sub.out, nil
	default:
		return nil, ErrSessionBusy
	}
}

// Run answers queued submissions one at a time until the context is
// cancelled. Each reply is classified immediately but surfaced only after
// the configured delay.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sub := <-s.queue:
			s.busy.Store(true)
			s.answer(ctx, sub)
			s.busy.Store(false)
		}
	}
}

func (s *Session) answer(ctx context.Context, sub submission) {
	intent := s.classifier.Classify(sub.text)

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.delay):
		}
	}

	sub.out <- Reply{
		Intent:   intent.ID,
		Category: intent.Category,
		Body:     intent.Response,
	}
}
