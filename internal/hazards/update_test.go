package hazards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-route-advisor/internal/risk"
)

func TestParseUpdate_Valid(t *testing.T) {
	value := []byte(`{
		"generated_at": "2026-08-30T12:00:00Z",
		"segments": [
			{"location": {"lat": 29.76, "lng": -95.36}, "risk_score": 0.85, "key_factors": ["heavy rainfall"]},
			{"location": {"lat": 29.80, "lng": -95.40}, "risk_score": 0.45}
		]
	}`)

	u, dropped, err := ParseUpdate(value)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), u.GeneratedAt)
	require.Len(t, u.Segments, 2)
	assert.Equal(t, risk.LevelHigh, u.Segments[0].RiskLevel)
	assert.Equal(t, risk.LevelMedium, u.Segments[1].RiskLevel)
	assert.Equal(t, []string{"heavy rainfall"}, u.Segments[0].KeyFactors)
}

func TestParseUpdate_RederivesLevelFromScore(t *testing.T) {
	// Producer claims "low" but the score says otherwise.
	value := []byte(`{"segments": [
		{"location": {"lat": 1, "lng": 1}, "risk_score": 0.95, "risk_level": "low"}
	]}`)

	u, _, err := ParseUpdate(value)
	require.NoError(t, err)
	require.Len(t, u.Segments, 1)
	assert.Equal(t, risk.LevelHigh, u.Segments[0].RiskLevel)
}

func TestParseUpdate_DropsInvalidCoordinates(t *testing.T) {
	value := []byte(`{"segments": [
		{"location": {"lat": 91.0, "lng": 0}, "risk_score": 0.9},
		{"location": {"lat": 29.76, "lng": -95.36}, "risk_score": 0.9},
		{"location": {"lat": 0, "lng": -181.0}, "risk_score": 0.9}
	]}`)

	u, dropped, err := ParseUpdate(value)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, u.Segments, 1)
	assert.Equal(t, 29.76, u.Segments[0].Location.Lat)
}

func TestParseUpdate_PreservesOrder(t *testing.T) {
	value := []byte(`{"segments": [
		{"location": {"lat": 1, "lng": 1}, "risk_score": 0.1},
		{"location": {"lat": 2, "lng": 2}, "risk_score": 0.2},
		{"location": {"lat": 3, "lng": 3}, "risk_score": 0.3}
	]}`)

	u, _, err := ParseUpdate(value)
	require.NoError(t, err)
	require.Len(t, u.Segments, 3)
	for i, seg := range u.Segments {
		assert.Equal(t, float64(i+1), seg.Location.Lat)
	}
}

func TestParseUpdate_MalformedJSON(t *testing.T) {
	_, _, err := ParseUpdate([]byte(`{nope`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse hazard update")
}

func TestParseUpdate_EmptySegments(t *testing.T) {
	u, dropped, err := ParseUpdate([]byte(`{"segments": []}`))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Empty(t, u.Segments)
}
