package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinuteOfDay(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{-1, AnyTime},
		{0, "12:00 AM"},
		{5, "12:05 AM"},
		{480, "8:00 AM"},
		{720, "12:00 PM"},
		{1439, "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinuteOfDay(tt.minutes))
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", -1, false},
		{"any", -1, false},
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"8:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIso8601FromTime(t *testing.T) {
	assert.Equal(t, "", Iso8601FromTime(time.Time{}))
	assert.Equal(t, "2024-03-01T12:00:00Z", Iso8601FromTime(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestHaversineKM(t *testing.T) {
	// Boston Common to MIT, roughly 2.4 km
	d := HaversineKM(42.3551, -71.0656, 42.3601, -71.0942)
	assert.InDelta(t, 2.4, d, 0.3)
	assert.Zero(t, HaversineKM(42.0, -71.0, 42.0, -71.0))
}

func TestLineLengthKM(t *testing.T) {
	line := [][]float64{{-71.0656, 42.3551}, {-71.0942, 42.3601}, {-71.0942}}
	assert.InDelta(t, HaversineKM(42.3551, -71.0656, 42.3601, -71.0942), LineLengthKM(line), 1e-9)
	assert.Zero(t, LineLengthKM(nil))
}
