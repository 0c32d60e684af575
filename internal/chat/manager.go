package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrNotRunning is returned by Open before Run has started the manager.
var ErrNotRunning = errors.New("chat manager is not running")

// ErrTooManySessions caps concurrent sessions; the store is memory-only.
var ErrTooManySessions = errors.New("too many active chat sessions")

const maxSessions = 1024

// Manager owns all live chat sessions and their worker goroutines.
// Session state is transient: nothing survives process restart.
type Manager struct {
	classifier Classifier
	delay      time.Duration
	queueSize  int
	clock      clockwork.Clock
	logger     *slog.Logger

	mu       sync.Mutex
	ctx      context.Context
	sessions map[string]*Session
	wg       sync.WaitGroup
}

// NewManager creates a session manager. A nil clock means the real clock.
func NewManager(classifier Classifier, delay time.Duration, queueSize int, clock clockwork.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		classifier: classifier,
		delay:      delay,
		queueSize:  queueSize,
		clock:      clock,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

// Run keeps session workers alive until the context is cancelled, then waits
// for them to drain. Must be running before Open is called.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	m.logger.Info("chat manager started", "reply_delay", m.delay)
	<-ctx.Done()
	m.wg.Wait()
	m.logger.Info("chat manager stopped")
	return nil
}

// Open returns the session with the given ID, creating it (and its worker)
// on first use. An empty ID allocates a fresh session with a random UUID.
func (m *Manager) Open(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx == nil {
		return nil, ErrNotRunning
	}
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	if len(m.sessions) >= maxSessions {
		return nil, ErrTooManySessions
	}

	if id == "" {
		id = uuid.NewString()
	}
	s := NewSession(id, m.classifier, m.delay, m.queueSize, m.clock)
	m.sessions[id] = s

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := s.Run(m.ctx); err != nil {
			m.logger.Error("chat session worker error", "session_id", s.ID(), "error", err)
		}
	}()

	return s, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
