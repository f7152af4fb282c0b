// Package tripdata parses bikeshare trip history CSV files.
package tripdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/VivianChencwy/bikewatching/traffic"
)

// Stats reports how many rows were read and skipped
type Stats struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// timeLayouts are tried in order for started_at / ended_at
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	time.RFC3339,
}

type columns struct {
	startedAt, endedAt, from, to int
	rideID, bikeType, member     int
}

// Parse reads trips from CSV. Timestamps without a zone are interpreted in loc.
// Rows with bad timestamps or blank station ids are skipped and counted.
func Parse(r io.Reader, loc *time.Location) ([]traffic.Trip, Stats, error) {
	if loc == nil {
		loc = time.Local
	}
	csvr := csv.NewReader(r)
	csvr.ReuseRecord = true
	csvr.FieldsPerRecord = -1

	head, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Stats{}, errors.New("tripdata: empty file")
		}
		return nil, Stats{}, fmt.Errorf("tripdata: failed to read header: %w", err)
	}
	cols, err := locateColumns(head)
	if err != nil {
		return nil, Stats{}, err
	}

	var (
		trips []traffic.Trip
		stats Stats
	)
	for {
		row, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("tripdata: row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++

		trip, ok := parseRow(row, cols, loc)
		if !ok {
			stats.Skipped++
			continue
		}
		trips = append(trips, trip)
	}
	return trips, stats, nil
}

// ParseBytes is Parse over an in-memory document
func ParseBytes(data []byte, loc *time.Location) ([]traffic.Trip, Stats, error) {
	return Parse(bytes.NewReader(data), loc)
}

func locateColumns(head []string) (columns, error) {
	idx := func(names ...string) int {
		for i, h := range head {
			h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
			for _, col := range names {
				if strings.EqualFold(h, col) {
					return i
				}
			}
		}
		return -1
	}
	cols := columns{
		startedAt: idx("started_at"),
		endedAt:   idx("ended_at"),
		from:      idx("start_station_id"),
		to:        idx("end_station_id"),
		rideID:    idx("ride_id"),
		bikeType:  idx("rideable_type", "bike_type"),
		member:    idx("member_casual", "is_member"),
	}
	var missing []string
	for name, i := range map[string]int{
		"started_at":       cols.startedAt,
		"ended_at":         cols.endedAt,
		"start_station_id": cols.from,
		"end_station_id":   cols.to,
	} {
		if i < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columns{}, fmt.Errorf("tripdata: missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(row []string, cols columns, loc *time.Location) (traffic.Trip, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	from, to := field(cols.from), field(cols.to)
	if from == "" || to == "" {
		return traffic.Trip{}, false
	}
	start, err := ParseTimestamp(field(cols.startedAt), loc)
	if err != nil {
		return traffic.Trip{}, false
	}
	end, err := ParseTimestamp(field(cols.endedAt), loc)
	if err != nil {
		return traffic.Trip{}, false
	}

	return traffic.Trip{
		RideID:         field(cols.rideID),
		BikeType:       field(cols.bikeType),
		Member:         parseMember(field(cols.member)),
		StartedAt:      start,
		EndedAt:        end,
		StartStationID: from,
		EndStationID:   to,
	}, true
}

// ParseTimestamp parses a trip timestamp, interpreting zone-less values in loc
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func parseMember(s string) bool {
	if strings.EqualFold(s, "member") {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
