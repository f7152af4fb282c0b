package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/traffic"
)

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, urlOrPath string) ([]byte, error) {
	data, ok := m[urlOrPath]
	if !ok {
		return nil, fmt.Errorf("HTTP 404 from %s", urlOrPath)
	}
	return []byte(data), nil
}

const (
	stationsURL = "https://example.test/station_information.json"
	tripsURL    = "https://example.test/trips.csv"
	lanesURL    = "https://example.test/lanes.geojson"
)

var testFeeds = mapFetcher{
	stationsURL: `{"data": {"stations": [
		{"station_id": "1", "short_name": "A", "name": "Alpha", "lat": 42.36, "lon": -71.09},
		{"station_id": "2", "short_name": "B", "name": "Bravo", "lat": 42.35, "lon": -71.08},
		{"station_id": "3", "short_name": "C", "name": "Charlie", "lat": 42.34, "lon": -71.07}
	]}}`,
	tripsURL: "started_at,ended_at,start_station_id,end_station_id\n" +
		"2024-03-01 00:05:00,2024-03-01 00:50:00,A,B\n" +
		"2024-03-01 08:00:00,2024-03-01 08:20:00,A,B\n" +
		"2024-03-01 08:10:00,2024-03-01 08:30:00,B,A\n" +
		"2024-03-01 17:00:00,2024-03-01 17:30:00,B,C\n" +
		"bad,2024-03-01 17:30:00,B,C\n",
	lanesURL: `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[-71.09, 42.36], [-71.08, 42.35]]}}
	]}`,
}

var testSystem = config.System{
	Name:                  "testbikes",
	StationInformationURL: stationsURL,
	TripsURL:              tripsURL,
	Timezone:              "America/New_York",
	Lanes:                 []config.LaneLayer{{Name: "boston", URL: lanesURL}},
}

func loadTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Load(context.Background(), testFeeds, testSystem, 60)
	require.NoError(t, err)
	return snap
}

func TestLoad(t *testing.T) {
	snap := loadTestSnapshot(t)

	assert.Equal(t, "testbikes", snap.System)
	assert.Len(t, snap.Stations, 3)
	assert.Len(t, snap.Trips, 4)
	assert.Equal(t, 1, snap.TripStats.Skipped)
	assert.Equal(t, "America/New_York", snap.Location().String())
	assert.NotEqual(t, [16]byte{}, [16]byte(snap.ID))

	// B departs at 08:10 and 17:00 and receives arrivals at 00:50 and 08:20
	assert.Equal(t, 4, snap.DomainMax())
}

func TestLoad_FeedErrors(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		wantMsg string
	}{
		{"missing stations", stationsURL, "station information"},
		{"missing trips", tripsURL, "trips"},
		{"missing lanes", lanesURL, "lane layer boston"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feeds := mapFetcher{}
			for k, v := range testFeeds {
				if k != tt.drop {
					feeds[k] = v
				}
			}
			_, err := Load(context.Background(), feeds, testSystem, 60)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSnapshot_Traffic(t *testing.T) {
	snap := loadTestSnapshot(t)

	all := snap.Traffic(traffic.NoFilter)
	require.Len(t, all, 3)
	assert.Equal(t, traffic.Station{ID: "A", SystemID: "1", Name: "Alpha", Lat: 42.36, Lon: -71.09, Departures: 2, Arrivals: 1, TotalTraffic: 3}, all[0])

	morning := snap.Traffic(8 * 60)
	assert.Equal(t, 1, morning[0].Departures)
	assert.Equal(t, 1, morning[0].Arrivals)
	assert.Zero(t, morning[2].TotalTraffic)

	// callers may modify the returned slice without affecting later calls
	all[0].TotalTraffic = 999
	assert.Equal(t, 3, snap.Traffic(traffic.NoFilter)[0].TotalTraffic)
}

func TestSnapshot_Scatter(t *testing.T) {
	snap := loadTestSnapshot(t)

	sc := snap.Scatter(17 * 60)
	assert.True(t, sc.Filtered)
	assert.Equal(t, "5:00 PM", sc.TimeLabel)
	assert.Equal(t, 4, sc.DomainMax)
	require.Len(t, sc.Markers, 3)
	assert.Equal(t, 1, sc.Markers[1].Departures)
	assert.Equal(t, 1, sc.Markers[2].Arrivals)
}

func TestSnapshot_Station(t *testing.T) {
	snap := loadTestSnapshot(t)

	st, ok := snap.Station("B", traffic.NoFilter)
	require.True(t, ok)
	assert.Equal(t, 4, st.TotalTraffic)

	st, ok = snap.Station("B", 0)
	require.True(t, ok)
	assert.Equal(t, 1, st.Arrivals)
	assert.Zero(t, st.Departures)

	_, ok = snap.Station("Z", traffic.NoFilter)
	assert.False(t, ok)
}

func TestSnapshot_Busiest(t *testing.T) {
	snap := loadTestSnapshot(t)

	top := snap.Busiest(traffic.NoFilter, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].ID)
	assert.Equal(t, "A", top[1].ID)

	assert.Len(t, snap.Busiest(traffic.NoFilter, 10), 3)
}

func TestSnapshot_Lanes(t *testing.T) {
	snap := loadTestSnapshot(t)

	layer, ok := snap.Lane("boston")
	require.True(t, ok)
	assert.Equal(t, 1, layer.Summary.LineStrings)

	_, ok = snap.Lane("cambridge")
	assert.False(t, ok)

	sums := snap.LaneSummaries()
	require.Len(t, sums, 1)
	assert.Equal(t, "boston", sums[0].Name)
}

func TestSnapshot_FileCacheRebuildsIndexes(t *testing.T) {
	snap := loadTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "snapshot.gob")

	require.NoError(t, SaveFile(snap, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, snap.DomainMax(), loaded.DomainMax())
	assert.Equal(t, snap.Traffic(8*60), loaded.Traffic(8*60))
	assert.Equal(t, snap.Traffic(0), loaded.Traffic(0))

	_, ok := loaded.Lane("boston")
	assert.True(t, ok)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)

	_, err = Deserialize([]byte("not gob"))
	assert.Error(t, err)
}
