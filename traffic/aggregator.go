package traffic

import "time"

// MinutesSinceMidnight returns hour*60+minute of t in its own location.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Bucketize groups trips by the minute-of-day of their start and end times in loc.
// A nil loc uses each timestamp's own location.
func Bucketize(trips []Trip, loc *time.Location) (departures, arrivals *Buckets) {
	departures, arrivals = &Buckets{}, &Buckets{}
	for i := range trips {
		t := &trips[i]
		start, end := t.StartedAt, t.EndedAt
		if loc != nil {
			start, end = start.In(loc), end.In(loc)
		}
		dep := MinutesSinceMidnight(start)
		arr := MinutesSinceMidnight(end)
		departures[dep] = append(departures[dep], t)
		arrivals[arr] = append(arrivals[arr], t)
	}
	return departures, arrivals
}

// SelectWindow returns the trips within DefaultWindowRadius minutes of minute,
// or every trip when minute is NoFilter.
func SelectWindow(b *Buckets, minute int) []*Trip {
	return SelectWindowRadius(b, minute, DefaultWindowRadius)
}

// SelectWindowRadius returns the trips whose bucket lies in the circular
// interval [minute-radius, minute+radius], wrapping at midnight.
func SelectWindowRadius(b *Buckets, minute, radius int) []*Trip {
	if minute == NoFilter || radius < 0 || 2*radius+1 >= MinutesPerDay {
		return flatten(b[:])
	}
	minute = normalizeMinute(minute)
	lower := (minute - radius + MinutesPerDay) % MinutesPerDay
	upper := (minute + radius + 1) % MinutesPerDay
	if lower > upper {
		return append(flatten(b[lower:]), flatten(b[:upper])...)
	}
	return flatten(b[lower:upper])
}

func normalizeMinute(m int) int {
	return ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

func flatten(buckets [][]*Trip) []*Trip {
	n := 0
	for _, bucket := range buckets {
		n += len(bucket)
	}
	out := make([]*Trip, 0, n)
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}
	return out
}

// Aggregator holds the minute buckets for one trip dataset
type Aggregator struct {
	departures *Buckets
	arrivals   *Buckets
	radius     int
	trips      int
}

// NewAggregator buckets trips by local minute-of-day.
func NewAggregator(trips []Trip, loc *time.Location) *Aggregator {
	dep, arr := Bucketize(trips, loc)
	return &Aggregator{departures: dep, arrivals: arr, radius: DefaultWindowRadius, trips: len(trips)}
}

// WithRadius returns a copy of the aggregator using a different window radius.
// The buckets are shared.
func (a *Aggregator) WithRadius(radius int) *Aggregator {
	cp := *a
	cp.radius = radius
	return &cp
}

// Radius returns the window radius in minutes.
func (a *Aggregator) Radius() int { return a.radius }

// TripCount returns the number of trips that were bucketed.
func (a *Aggregator) TripCount() int { return a.trips }

// Departures returns the departure buckets. Callers must not modify them.
func (a *Aggregator) Departures() *Buckets { return a.departures }

// Arrivals returns the arrival buckets. Callers must not modify them.
func (a *Aggregator) Arrivals() *Buckets { return a.arrivals }

// ComputeStationTraffic returns a copy of stations with departures, arrivals
// and total traffic counted over the window around minute.
func (a *Aggregator) ComputeStationTraffic(stations []Station, minute int) []Station {
	deps := countBy(SelectWindowRadius(a.departures, minute, a.radius), func(t *Trip) string { return t.StartStationID })
	arrs := countBy(SelectWindowRadius(a.arrivals, minute, a.radius), func(t *Trip) string { return t.EndStationID })

	out := make([]Station, len(stations))
	for i, s := range stations {
		s.Departures = deps[s.ID]
		s.Arrivals = arrs[s.ID]
		s.TotalTraffic = s.Departures + s.Arrivals
		out[i] = s
	}
	return out
}

func countBy(trips []*Trip, key func(*Trip) string) map[string]int {
	counts := make(map[string]int)
	for _, t := range trips {
		counts[key(t)]++
	}
	return counts
}

// MaxTraffic returns the largest TotalTraffic in stations.
func MaxTraffic(stations []Station) int {
	max := 0
	for _, s := range stations {
		if s.TotalTraffic > max {
			max = s.TotalTraffic
		}
	}
	return max
}
