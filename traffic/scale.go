package traffic

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/VivianChencwy/bikewatching/utils"
)

// Radius ranges in pixels for unfiltered and filtered views
const (
	UnfilteredRadiusMin = 0
	UnfilteredRadiusMax = 25
	FilteredRadiusMin   = 3
	FilteredRadiusMax   = 50
)

// RadiusScale maps traffic volume to circle radius so that area grows linearly with traffic.
type RadiusScale struct {
	DomainMax float64
	RangeMin  float64
	RangeMax  float64
}

// NewRadiusScale returns the scale used for a view. domainMax should be the
// unfiltered maximum so that filtered circles stay comparable.
func NewRadiusScale(domainMax int, filtered bool) RadiusScale {
	if filtered {
		return RadiusScale{DomainMax: float64(domainMax), RangeMin: FilteredRadiusMin, RangeMax: FilteredRadiusMax}
	}
	return RadiusScale{DomainMax: float64(domainMax), RangeMin: UnfilteredRadiusMin, RangeMax: UnfilteredRadiusMax}
}

// Scale returns the radius for value v. Values beyond the domain extrapolate.
func (s RadiusScale) Scale(v int) float64 {
	if s.DomainMax <= 0 || v <= 0 {
		return s.RangeMin
	}
	t := math.Sqrt(float64(v)) / math.Sqrt(s.DomainMax)
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}

// DepartureRatio is the share of a station's traffic that departs from it.
// A station without traffic is balanced.
func DepartureRatio(s Station) float64 {
	if s.TotalTraffic == 0 {
		return 0.5
	}
	return float64(s.Departures) / float64(s.TotalTraffic)
}

// FlowClass quantizes a departure ratio in [0,1] into 0 (mostly arrivals),
// 0.5 (balanced) or 1 (mostly departures).
func FlowClass(ratio float64) float64 {
	switch {
	case ratio < 1.0/3:
		return 0
	case ratio < 2.0/3:
		return 0.5
	default:
		return 1
	}
}

var printer = message.NewPrinter(language.English)

// Tooltip describes a station's traffic for display.
func Tooltip(s Station) string {
	return printer.Sprintf("%d trips (%d departures, %d arrivals)", s.TotalTraffic, s.Departures, s.Arrivals)
}

// Marker is one station circle on the overlay
type Marker struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Departures     int     `json:"departures"`
	Arrivals       int     `json:"arrivals"`
	TotalTraffic   int     `json:"total_traffic"`
	Radius         float64 `json:"radius"`
	DepartureRatio float64 `json:"departure_ratio"`
	FlowClass      float64 `json:"flow_class"`
	Tooltip        string  `json:"tooltip"`
}

// Scatter is the full overlay for one slider position
type Scatter struct {
	Minute     int      `json:"minute"`
	Filtered   bool     `json:"filtered"`
	TimeLabel  string   `json:"time_label"`
	MaxTraffic int      `json:"max_traffic"`
	DomainMax  int      `json:"domain_max"`
	Markers    []Marker `json:"markers"`
}

// BuildScatter converts station counts for minute into markers.
func BuildScatter(stations []Station, minute, domainMax int) Scatter {
	filtered := minute != NoFilter
	scale := NewRadiusScale(domainMax, filtered)
	sc := Scatter{
		Minute:     minute,
		Filtered:   filtered,
		TimeLabel:  utils.FormatMinuteOfDay(minute),
		MaxTraffic: MaxTraffic(stations),
		DomainMax:  domainMax,
		Markers:    make([]Marker, 0, len(stations)),
	}
	for _, s := range stations {
		ratio := DepartureRatio(s)
		sc.Markers = append(sc.Markers, Marker{
			ID:             s.ID,
			Name:           s.Name,
			Lat:            s.Lat,
			Lon:            s.Lon,
			Departures:     s.Departures,
			Arrivals:       s.Arrivals,
			TotalTraffic:   s.TotalTraffic,
			Radius:         scale.Scale(s.TotalTraffic),
			DepartureRatio: ratio,
			FlowClass:      FlowClass(ratio),
			Tooltip:        Tooltip(s),
		})
	}
	return sc
}
