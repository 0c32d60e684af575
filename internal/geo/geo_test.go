package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_KnownPairs(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Coordinate
		expected float64 // km
		delta    float64
	}{
		{
			name:     "Trenton to Newark",
			a:        Coordinate{Lat: 40.2206, Lng: -74.7597},
			b:        Coordinate{Lat: 40.7357, Lng: -74.1724},
			expected: 76.0,
			delta:    2.0,
		},
		{
			name:     "adjacent block",
			a:        Coordinate{Lat: 40.10, Lng: -74.20},
			b:        Coordinate{Lat: 40.1003, Lng: -74.2001},
			expected: 0.04,
			delta:    0.01,
		},
		{
			name:     "across the antimeridian",
			a:        Coordinate{Lat: 0, Lng: 179.5},
			b:        Coordinate{Lat: 0, Lng: -179.5},
			expected: 111.2,
			delta:    1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Distance(tc.a, tc.b), tc.delta)
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := Coordinate{Lat: 40.0583, Lng: -74.4057}
	b := Coordinate{Lat: 40.3573, Lng: -74.6672}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_SamePointIsZero(t *testing.T) {
	p := Coordinate{Lat: 40.0583, Lng: -74.4057}

	assert.Zero(t, Distance(p, p))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{name: "valid", coord: Coordinate{Lat: 40.0583, Lng: -74.4057}},
		{name: "boundary north pole", coord: Coordinate{Lat: 90, Lng: 0}},
		{name: "boundary antimeridian", coord: Coordinate{Lat: 0, Lng: -180}},
		{name: "latitude too high", coord: Coordinate{Lat: 90.0001, Lng: 0}, wantErr: true},
		{name: "latitude too low", coord: Coordinate{Lat: -91, Lng: 0}, wantErr: true},
		{name: "longitude too high", coord: Coordinate{Lat: 0, Lng: 180.5}, wantErr: true},
		{name: "longitude too low", coord: Coordinate{Lat: 0, Lng: -200}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coord.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
				return
			}
			assert.NoError(t, err)
		})
	}
}
