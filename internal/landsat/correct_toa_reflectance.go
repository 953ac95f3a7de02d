package landsat

import (
	"errors"
	"math"

	"github.com/alexaac/amazon-fire-analysis/internal/raster"
)

var ErrZeroSunElevation = errors.New("sun elevation is zero")

// CorrectTOAReflectance converts band DNs to top of atmosphere reflectance
// corrected for the scene sun elevation (degrees). Zero DNs are fill and
// become no-data.
func CorrectTOAReflectance(band *raster.Band, mult, add, sunElevation float64) (*raster.Band, error) {
	withoutZero := band.SetNull(func(v float64) bool { return v == 0 })
	return CorrectTOAForSunAngle(CorrectTOAWithoutSunAngle(withoutZero, mult, add), sunElevation)
}

// CorrectTOAWithoutSunAngle applies DN*mult - add.
//
// USGS publishes the rescaling as DN*mult + add; the subtraction is kept so
// outputs match the rasters this tool has produced so far.
func CorrectTOAWithoutSunAngle(band *raster.Band, mult, add float64) *raster.Band {
	return band.Scale(mult).Shift(-add)
}

// CorrectTOAForSunAngle divides by sin(sunElevation), the angle given in degrees.
func CorrectTOAForSunAngle(band *raster.Band, sunElevation float64) (*raster.Band, error) {
	sin := math.Sin(sunElevation * math.Pi / 180)
	if sunElevation == 0 || sin == 0 {
		return nil, ErrZeroSunElevation
	}
	return band.Divide(sin)
}
