package gbfs

import "github.com/VivianChencwy/bikewatching/traffic"

// Index stores station metadata for fast lookups
type Index struct {
	stations []traffic.Station
	byID     map[string]int // station ID -> position in stations
}

// NewIndex builds an index over stations
func NewIndex(stations []traffic.Station) *Index {
	idx := &Index{stations: stations, byID: make(map[string]int, len(stations))}
	for i, s := range stations {
		idx.byID[s.ID] = i
	}
	return idx
}

// NewIndexFromBytes parses a station_information document and indexes it
func NewIndexFromBytes(data []byte) (*Index, error) {
	stations, err := ParseStationInformation(data)
	if err != nil {
		return nil, err
	}
	return NewIndex(stations), nil
}

// Stations returns all stations sorted by ID. Callers must not modify the slice.
func (x *Index) Stations() []traffic.Station { return x.stations }

// Len returns the number of stations
func (x *Index) Len() int { return len(x.stations) }

// Station looks up a station by ID
func (x *Index) Station(id string) (traffic.Station, bool) {
	i, ok := x.byID[id]
	if !ok {
		return traffic.Station{}, false
	}
	return x.stations[i], true
}

// Has reports whether id is a known station
func (x *Index) Has(id string) bool {
	_, ok := x.byID[id]
	return ok
}
