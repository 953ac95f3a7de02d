package landsat

import (
	"errors"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var ErrDegenerateFootprint = errors.New("footprint has no area")

// FootprintKeys are the product corner coordinates of an MTL file.
var FootprintKeys = []string{
	"CORNER_UL_LAT_PRODUCT", "CORNER_UL_LON_PRODUCT",
	"CORNER_UR_LAT_PRODUCT", "CORNER_UR_LON_PRODUCT",
	"CORNER_LR_LAT_PRODUCT", "CORNER_LR_LON_PRODUCT",
	"CORNER_LL_LAT_PRODUCT", "CORNER_LL_LON_PRODUCT",
}

// Footprint builds the closed scene polygon (UL, UR, LR, LL, UL) in lon/lat.
// It reports false when any corner is missing or not numeric.
func Footprint(values map[string]string) (orb.Polygon, bool) {
	coords := make([]float64, len(FootprintKeys))
	for i, key := range FootprintKeys {
		v, err := strconv.ParseFloat(values[key], 64)
		if err != nil {
			return nil, false
		}
		coords[i] = v
	}

	ring := orb.Ring{}
	for i := 0; i < len(coords); i += 2 {
		ring = append(ring, orb.Point{coords[i+1], coords[i]})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}, true
}

// FootprintCentroid returns the latitude and longitude of the footprint centre.
func FootprintCentroid(footprint orb.Polygon) (float64, float64, error) {
	centroid, area := planar.CentroidArea(footprint)
	if area == 0 {
		return 0, 0, ErrDegenerateFootprint
	}
	return centroid.Y(), centroid.X(), nil
}
