package tripdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bluebikesCSV = `ride_id,bike_type,started_at,ended_at,start_station_id,end_station_id,is_member
R1,electric,2024-03-01 00:05:19.432,2024-03-01 00:50:02.100,A32000,M32006,true
R2,classic,2024-03-01 08:00:00,2024-03-01 08:12:00,M32006,A32000,false
R3,classic,not-a-date,2024-03-01 08:12:00,M32006,A32000,false
R4,classic,2024-03-01 09:00:00,2024-03-01 09:10:00,,A32000,true
`

func TestParse(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	trips, stats, err := Parse(strings.NewReader(bluebikesCSV), loc)
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 4, Skipped: 2}, stats)
	require.Len(t, trips, 2)

	first := trips[0]
	assert.Equal(t, "R1", first.RideID)
	assert.Equal(t, "electric", first.BikeType)
	assert.True(t, first.Member)
	assert.Equal(t, "A32000", first.StartStationID)
	assert.Equal(t, "M32006", first.EndStationID)
	assert.Equal(t, 0, first.StartedAt.Hour())
	assert.Equal(t, 5, first.StartedAt.Minute())
	assert.Equal(t, loc, first.StartedAt.Location())
	assert.Equal(t, 50, first.EndedAt.Minute())

	assert.False(t, trips[1].Member)
}

func TestParse_ColumnOrderAndAliases(t *testing.T) {
	data := "END_STATION_ID,start_station_id,ended_at,started_at,member_casual,rideable_type\n" +
		"B,A,2024-03-01T10:30:00Z,2024-03-01T10:00:00Z,member,docked_bike\n"

	trips, stats, err := ParseBytes([]byte(data), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Rows)
	require.Len(t, trips, 1)
	assert.Equal(t, "A", trips[0].StartStationID)
	assert.Equal(t, "B", trips[0].EndStationID)
	assert.True(t, trips[0].Member)
	assert.Equal(t, "docked_bike", trips[0].BikeType)
	assert.Equal(t, 10, trips[0].StartedAt.Hour())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"empty file", "", "empty file"},
		{"missing columns", "ride_id,started_at,start_station_id\nR1,2024-03-01 00:00:00,A\n", "ended_at, end_station_id"},
		{"unterminated quote", "started_at,ended_at,start_station_id,end_station_id\n\"2024-03-01,x,y,z\n", "row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.data), time.UTC)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	data := "\ufeffstarted_at,ended_at,start_station_id,end_station_id\n2024-03-01 07:00,2024-03-01 07:20,A,B\n"

	trips, _, err := ParseBytes([]byte(data), time.UTC)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, 7, trips[0].StartedAt.Hour())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-01 00:05:19.432", time.Date(2024, 3, 1, 0, 5, 19, 432000000, time.UTC), false},
		{"2024-03-01 23:59:59", time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), false},
		{"2024-03-01T12:00:00Z", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"03/01/2024 12:00", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}
