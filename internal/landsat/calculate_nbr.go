package landsat

import (
	"math"

	"github.com/alexaac/amazon-fire-analysis/internal/raster"
)

// NBRScale is the factor the burn ratio is stored with.
const NBRScale = 1000

// CalculateNBR computes (b5-b7)/(b5+b7) scaled by NBRScale and rounded into
// an Int32 band. Pixels where b5+b7 is zero are no-data. Results are not
// clamped to [-1000, 1000]; negative reflectances can land outside it. Values
// that do not fit Int32 without colliding with the no-data sentinel are
// no-data.
func CalculateNBR(band5, band7 *raster.Band) (*raster.Band, error) {
	return raster.Combine(band5, band7, raster.Int32, raster.Int32NoData, nbr)
}

func nbr(nir, swir float64) (float64, bool) {
	sum := nir + swir
	if sum == 0 {
		return 0, false
	}
	v := math.Round((nir - swir) / sum * NBRScale)
	if v <= math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return v, true
}
