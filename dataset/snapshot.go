package dataset

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/gbfs"
	"github.com/VivianChencwy/bikewatching/lanes"
	"github.com/VivianChencwy/bikewatching/source"
	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/tripdata"
)

// Snapshot is a fully loaded system. Exported fields are persisted by the gob cache.
type Snapshot struct {
	ID            uuid.UUID
	System        string
	Timezone      string
	LoadedAt      time.Time
	WindowMinutes int
	Stations      []traffic.Station
	Trips         []traffic.Trip
	TripStats     tripdata.Stats
	Lanes         []lanes.Layer

	loc       *time.Location
	agg       *traffic.Aggregator
	stations  *gbfs.Index
	allTime   []traffic.Station
	domainMax int
	laneIdx   map[string]int
}

// New builds a snapshot from already parsed data
func New(system, timezone string, window int, stations []traffic.Station, trips []traffic.Trip, layers []lanes.Layer) (*Snapshot, error) {
	s := &Snapshot{
		ID:            uuid.New(),
		System:        system,
		Timezone:      timezone,
		LoadedAt:      time.Now(),
		WindowMinutes: window,
		Stations:      stations,
		Trips:         trips,
		Lanes:         layers,
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fetches and parses every feed of sys
func Load(ctx context.Context, f source.Fetcher, sys config.System, window int) (*Snapshot, error) {
	loc, err := loadLocation(sys.Timezone)
	if err != nil {
		return nil, err
	}

	stationData, err := f.Fetch(ctx, sys.StationInformationURL)
	if err != nil {
		return nil, fmt.Errorf("station information: %w", err)
	}
	stations, err := gbfs.ParseStationInformation(stationData)
	if err != nil {
		return nil, fmt.Errorf("station information: %w", err)
	}

	tripData, err := f.Fetch(ctx, sys.TripsURL)
	if err != nil {
		return nil, fmt.Errorf("trips: %w", err)
	}
	trips, stats, err := tripdata.ParseBytes(tripData, loc)
	if err != nil {
		return nil, fmt.Errorf("trips: %w", err)
	}
	if stats.Skipped > 0 {
		log.Printf("%s: skipped %d of %d trip rows", sys.Name, stats.Skipped, stats.Rows)
	}

	layers := make([]lanes.Layer, 0, len(sys.Lanes))
	for _, l := range sys.Lanes {
		data, err := f.Fetch(ctx, l.URL)
		if err != nil {
			return nil, fmt.Errorf("lane layer %s: %w", l.Name, err)
		}
		layer, err := lanes.Parse(l.Name, data)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	s, err := New(sys.Name, sys.Timezone, window, stations, trips, layers)
	if err != nil {
		return nil, err
	}
	s.TripStats = stats
	log.Printf("%s: loaded snapshot %s with %d stations, %d trips, %d lane layers",
		sys.Name, s.ID, len(stations), len(trips), len(layers))
	return s, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = config.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// index rebuilds the unexported lookup structures from the exported fields
func (s *Snapshot) index() error {
	loc, err := loadLocation(s.Timezone)
	if err != nil {
		return err
	}
	s.loc = loc
	if s.WindowMinutes <= 0 {
		s.WindowMinutes = traffic.DefaultWindowRadius
	}
	s.agg = traffic.NewAggregator(s.Trips, loc).WithRadius(s.WindowMinutes)
	s.stations = gbfs.NewIndex(s.Stations)
	s.allTime = s.agg.ComputeStationTraffic(s.Stations, traffic.NoFilter)
	s.domainMax = traffic.MaxTraffic(s.allTime)
	s.laneIdx = make(map[string]int, len(s.Lanes))
	for i, l := range s.Lanes {
		s.laneIdx[l.Summary.Name] = i
	}
	return nil
}

// Location returns the system timezone
func (s *Snapshot) Location() *time.Location { return s.loc }

// DomainMax is the largest all-day station traffic, used as the radius domain
func (s *Snapshot) DomainMax() int { return s.domainMax }

// Traffic returns per-station counts for the window around minute
func (s *Snapshot) Traffic(minute int) []traffic.Station {
	if minute == traffic.NoFilter {
		out := make([]traffic.Station, len(s.allTime))
		copy(out, s.allTime)
		return out
	}
	return s.agg.ComputeStationTraffic(s.Stations, minute)
}

// Scatter returns the overlay markers for minute
func (s *Snapshot) Scatter(minute int) traffic.Scatter {
	return traffic.BuildScatter(s.Traffic(minute), minute, s.domainMax)
}

// Station returns a single station's counts for minute
func (s *Snapshot) Station(id string, minute int) (traffic.Station, bool) {
	st, ok := s.stations.Station(id)
	if !ok {
		return traffic.Station{}, false
	}
	return s.agg.ComputeStationTraffic([]traffic.Station{st}, minute)[0], true
}

// Busiest returns the n stations with the most traffic for minute, ties broken by ID
func (s *Snapshot) Busiest(minute, n int) []traffic.Station {
	st := s.Traffic(minute)
	sort.SliceStable(st, func(i, j int) bool {
		if st[i].TotalTraffic != st[j].TotalTraffic {
			return st[i].TotalTraffic > st[j].TotalTraffic
		}
		return st[i].ID < st[j].ID
	})
	if n >= 0 && n < len(st) {
		st = st[:n]
	}
	return st
}

// Lane returns a lane layer by name
func (s *Snapshot) Lane(name string) (lanes.Layer, bool) {
	i, ok := s.laneIdx[name]
	if !ok {
		return lanes.Layer{}, false
	}
	return s.Lanes[i], true
}

// LaneSummaries lists every lane layer
func (s *Snapshot) LaneSummaries() []lanes.Summary {
	out := make([]lanes.Summary, 0, len(s.Lanes))
	for _, l := range s.Lanes {
		out = append(out, l.Summary)
	}
	return out
}
