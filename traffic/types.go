package traffic

import "time"

const (
	// MinutesPerDay is the number of minute buckets.
	MinutesPerDay = 1440

	// NoFilter selects every trip regardless of time of day.
	NoFilter = -1

	// DefaultWindowRadius is the number of minutes either side of the selected minute.
	DefaultWindowRadius = 60
)

// Trip is a single ride between two stations
type Trip struct {
	RideID         string    `json:"ride_id,omitempty"`
	BikeType       string    `json:"bike_type,omitempty"`
	Member         bool      `json:"member,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	StartStationID string    `json:"start_station_id"`
	EndStationID   string    `json:"end_station_id"`
}

// Station is a docking station with traffic derived from trips.
// ID is the key used by the trip feed (GBFS short_name).
type Station struct {
	ID       string  `json:"id"`
	SystemID string  `json:"system_id,omitempty"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Capacity int     `json:"capacity,omitempty"`

	Departures   int `json:"departures"`
	Arrivals     int `json:"arrivals"`
	TotalTraffic int `json:"total_traffic"`
}

// Buckets holds trips grouped by minute-of-day
type Buckets [MinutesPerDay][]*Trip

// Len returns the total number of trips across all buckets.
func (b *Buckets) Len() int {
	n := 0
	for i := range b {
		n += len(b[i])
	}
	return n
}
