package tzlocal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_TimezoneName(t *testing.T) {
	f, err := NewFinder()
	require.NoError(t, err)

	tests := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{name: "Springfield, Illinois", lat: 39.7817, lng: -89.6501, want: "America/Chicago"},
		{name: "San Jose, California", lat: 37.3382, lng: -121.8863, want: "America/Los_Angeles"},
		{name: "Tel Aviv, Israel", lat: 32.0853, lng: 34.7818, want: "Asia/Jerusalem"},
		{name: "Sydney, Australia", lat: -33.8688, lng: 151.2093, want: "Australia/Sydney"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.TimezoneName(tt.lat, tt.lng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinder_OpenOcean(t *testing.T) {
	f, err := NewFinder()
	require.NoError(t, err)

	// tzf reports Etc/GMT offsets over open water rather than failing.
	tz, err := f.TimezoneName(0, -140)
	require.NoError(t, err)
	assert.Contains(t, tz, "Etc/GMT")
}

func TestNewFinder_Singleton(t *testing.T) {
	f1, err := NewFinder()
	require.NoError(t, err)
	f2, err := NewFinder()
	require.NoError(t, err)
	assert.Same(t, f1, f2)
}
