package hazards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-route-advisor/internal/geo"
	"github.com/couchcryptid/flood-route-advisor/internal/risk"
)

func TestStore_Empty(t *testing.T) {
	s := NewStore()

	assert.Empty(t, s.Snapshot())
	assert.Zero(t, s.Len())
	assert.True(t, s.UpdatedAt().IsZero())
}

func TestStore_ReplaceAndSnapshot(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	segs := []risk.HazardSegment{
		{Location: geo.Coordinate{Lat: 29.76, Lng: -95.36}, RiskScore: 0.9, RiskLevel: risk.LevelHigh},
		{Location: geo.Coordinate{Lat: 29.80, Lng: -95.40}, RiskScore: 0.5, RiskLevel: risk.LevelMedium},
	}

	s.Replace(segs, now)

	got := s.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, segs, got)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, now, s.UpdatedAt())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Replace([]risk.HazardSegment{
		{Location: geo.Coordinate{Lat: 1, Lng: 1}, RiskScore: 0.8},
	}, time.Now())

	got := s.Snapshot()
	got[0].RiskScore = 0.1

	assert.Equal(t, 0.8, s.Snapshot()[0].RiskScore)
}

func TestStore_ReplaceSwapsWholeSnapshot(t *testing.T) {
	s := NewStore()
	s.Replace([]risk.HazardSegment{
		{Location: geo.Coordinate{Lat: 1, Lng: 1}},
		{Location: geo.Coordinate{Lat: 2, Lng: 2}},
	}, time.Now())

	later := time.Now().Add(time.Minute)
	s.Replace([]risk.HazardSegment{
		{Location: geo.Coordinate{Lat: 3, Lng: 3}},
	}, later)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, 3.0, s.Snapshot()[0].Location.Lat)
	assert.Equal(t, later, s.UpdatedAt())
}

func TestStore_ReplaceWithEmptyClears(t *testing.T) {
	s := NewStore()
	s.Replace([]risk.HazardSegment{{Location: geo.Coordinate{Lat: 1, Lng: 1}}}, time.Now())

	s.Replace(nil, time.Now())

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Snapshot())
}
