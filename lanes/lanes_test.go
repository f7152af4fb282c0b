package lanes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivianChencwy/bikewatching/utils"
)

const bostonLanes = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Mass Ave"},
     "geometry": {"type": "LineString", "coordinates": [[-71.0942, 42.3601], [-71.0870, 42.3470]]}},
    {"type": "Feature", "properties": {"name": "Comm Ave"},
     "geometry": {"type": "MultiLineString", "coordinates": [
        [[-71.0800, 42.3500], [-71.0700, 42.3520]],
        [[-71.1000, 42.3490], [-71.0900, 42.3500]]
     ]}},
    {"type": "Feature", "properties": {"name": "Bike shop"},
     "geometry": {"type": "Point", "coordinates": [-71.05, 42.36]}}
  ]
}`

func TestParse(t *testing.T) {
	layer, err := Parse("boston", []byte(bostonLanes))
	require.NoError(t, err)

	sum := layer.Summary
	assert.Equal(t, "boston", sum.Name)
	assert.Equal(t, 3, sum.Features)
	assert.Equal(t, 3, sum.LineStrings)

	expected := utils.HaversineKM(42.3601, -71.0942, 42.3470, -71.0870) +
		utils.HaversineKM(42.3500, -71.0800, 42.3520, -71.0700) +
		utils.HaversineKM(42.3490, -71.1000, 42.3500, -71.0900)
	assert.InDelta(t, expected, sum.LengthKM, 1e-9)
	assert.Equal(t, []float64{-71.1000, 42.3470, -71.0700, 42.3601}, sum.BBox)
	assert.Equal(t, []byte(bostonLanes), layer.Raw)
}

func TestParse_NoLines(t *testing.T) {
	layer, err := Parse("empty", []byte(`{"type": "FeatureCollection", "features": []}`))
	require.NoError(t, err)
	assert.Zero(t, layer.Summary.LineStrings)
	assert.Nil(t, layer.Summary.BBox)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("cambridge", []byte(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cambridge")
}
