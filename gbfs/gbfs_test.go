package gbfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationInfo = `{
  "last_updated": 1710000000,
  "ttl": 5,
  "data": {
    "stations": [
      {"station_id": "f834", "short_name": "M32006", "name": "MIT at Mass Ave / Amherst St", "lat": 42.3581, "lon": -71.0932, "capacity": 27},
      {"station_id": "a101", "short_name": "A32000", "name": "Fan Pier", "lat": 42.3533, "lon": -71.0443, "capacity": 15.0},
      {"station_id": "z999", "short_name": "", "name": "Depot", "lat": 42.34, "lon": -71.1},
      {"station_id": "dup", "short_name": "A32000", "name": "Duplicate", "lat": 0, "lon": 0}
    ]
  }
}`

func TestParseStationInformation(t *testing.T) {
	stations, err := ParseStationInformation([]byte(stationInfo))
	require.NoError(t, err)
	require.Len(t, stations, 3)

	assert.Equal(t, "A32000", stations[0].ID)
	assert.Equal(t, "a101", stations[0].SystemID)
	assert.Equal(t, "Fan Pier", stations[0].Name)
	assert.Equal(t, 15, stations[0].Capacity)

	assert.Equal(t, "M32006", stations[1].ID)
	assert.Equal(t, 27, stations[1].Capacity)
	assert.InDelta(t, 42.3581, stations[1].Lat, 1e-9)

	// falls back to station_id without a short_name
	assert.Equal(t, "z999", stations[2].ID)
	assert.Zero(t, stations[2].Capacity)
}

func TestParseStationInformation_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"data": [`},
		{"missing data", `{"last_updated": 1}`},
		{"missing stations", `{"data": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStationInformation([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestIndex(t *testing.T) {
	idx, err := NewIndexFromBytes([]byte(stationInfo))
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Has("M32006"))
	assert.False(t, idx.Has("f834"))

	st, ok := idx.Station("M32006")
	require.True(t, ok)
	assert.Equal(t, "MIT at Mass Ave / Amherst St", st.Name)

	_, ok = idx.Station("nope")
	assert.False(t, ok)
}
