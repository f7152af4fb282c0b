package gbfs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/VivianChencwy/bikewatching/traffic"
)

// ErrNoStations is returned when the document has no data.stations list
var ErrNoStations = errors.New("gbfs: document has no data.stations")

// ParseStationInformation decodes a station_information document into stations sorted by ID
func ParseStationInformation(data []byte) ([]traffic.Station, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc StationInformation
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("gbfs: failed to decode station information: %w", err)
	}
	if doc.Data == nil || doc.Data.Stations == nil {
		return nil, ErrNoStations
	}

	seen := make(map[string]struct{}, len(doc.Data.Stations))
	stations := make([]traffic.Station, 0, len(doc.Data.Stations))
	for _, rec := range doc.Data.Stations {
		id := rec.ShortName
		if id == "" {
			id = rec.StationID
		}
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		stations = append(stations, traffic.Station{
			ID:       id,
			SystemID: rec.StationID,
			Name:     rec.Name,
			Lat:      rec.Lat,
			Lon:      rec.Lon,
			Capacity: toInt(rec.Capacity),
		})
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations, nil
}

func toInt(n json.Number) int {
	if n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(n.String(), 64); err == nil {
		return int(f)
	}
	return 0
}
