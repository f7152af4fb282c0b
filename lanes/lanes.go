// Package lanes loads bike lane GeoJSON layers for display under the station overlay.
package lanes

import (
	"fmt"
	"math"

	geojson "github.com/paulmach/go.geojson"

	"github.com/VivianChencwy/bikewatching/utils"
)

// Summary describes the contents of a layer
type Summary struct {
	Name        string    `json:"name"`
	Features    int       `json:"features"`
	LineStrings int       `json:"line_strings"`
	LengthKM    float64   `json:"length_km"`
	BBox        []float64 `json:"bbox,omitempty"` // [minLon, minLat, maxLon, maxLat]
}

// Layer is a parsed GeoJSON layer. Raw is served unchanged.
type Layer struct {
	Summary Summary
	Raw     []byte
}

// Parse decodes a FeatureCollection and summarises its line geometry
func Parse(name string, data []byte) (Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Layer{}, fmt.Errorf("lanes: layer %s: %w", name, err)
	}

	sum := Summary{Name: name, Features: len(fc.Features)}
	box := newBounds()
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch {
		case f.Geometry.IsLineString():
			sum.LineStrings++
			sum.LengthKM += utils.LineLengthKM(f.Geometry.LineString)
			box.extend(f.Geometry.LineString)
		case f.Geometry.IsMultiLineString():
			for _, line := range f.Geometry.MultiLineString {
				sum.LineStrings++
				sum.LengthKM += utils.LineLengthKM(line)
				box.extend(line)
			}
		}
	}
	sum.BBox = box.slice()
	return Layer{Summary: sum, Raw: data}, nil
}

type bounds struct {
	minLon, minLat, maxLon, maxLat float64
}

func newBounds() *bounds {
	return &bounds{minLon: math.Inf(1), minLat: math.Inf(1), maxLon: math.Inf(-1), maxLat: math.Inf(-1)}
}

func (b *bounds) extend(pts [][]float64) {
	for _, p := range pts {
		if len(p) < 2 {
			continue
		}
		b.minLon = math.Min(b.minLon, p[0])
		b.maxLon = math.Max(b.maxLon, p[0])
		b.minLat = math.Min(b.minLat, p[1])
		b.maxLat = math.Max(b.maxLat, p[1])
	}
}

func (b *bounds) slice() []float64 {
	if math.IsInf(b.minLon, 1) {
		return nil
	}
	return []float64{b.minLon, b.minLat, b.maxLon, b.maxLat}
}
