// Package hazards maintains the in-memory snapshot of flood hazard segments
// published by the prediction service, and the feed loop that keeps it fresh.
//
// The store replaces the original frontend's page-global overlay state: it is
// the single explicit holder of hazard data, handed to route analysis as an
// immutable snapshot. Nothing is persisted; a restart begins empty and
// readiness gates on the first successful update.
package hazards

import (
	"sync"
	"time"

	"github.com/couchcryptid/flood-route-advisor/internal/risk"
)

// Store holds the latest hazard snapshot. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	segments  []risk.HazardSegment
	updatedAt time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot atomically.
func (s *Store) Replace(segments []risk.HazardSegment, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = segments
	s.updatedAt = updatedAt
}

// Snapshot returns the current segments. The returned slice is a copy in
// order only — callers must not mutate the segments — and preserves feed
// order, which the annotator's first-hazard-wins rule depends on.
func (s *Store) Snapshot() []risk.HazardSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]risk.HazardSegment, len(s.segments))
	copy(out, s.segments)
	return out
}

// UpdatedAt returns when the snapshot was last replaced, zero if never.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Len returns the number of segments in the snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.segments)
}
