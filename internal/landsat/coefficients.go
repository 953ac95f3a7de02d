package landsat

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMissingCoefficient = errors.New("coefficient missing from metadata")
	ErrInvalidCoefficient = errors.New("coefficient is not numeric")
)

// Coefficients are the per-scene rescaling factors for bands 5 and 7.
// SunElevation is in degrees.
type Coefficients struct {
	ReflectanceMultBand5 float64 `json:"reflectance_mult_band_5"`
	ReflectanceMultBand7 float64 `json:"reflectance_mult_band_7"`
	ReflectanceAddBand5  float64 `json:"reflectance_add_band_5"`
	ReflectanceAddBand7  float64 `json:"reflectance_add_band_7"`
	SunElevation         float64 `json:"sun_elevation"`
}

// NewCoefficients converts the extracted MTL values. Every key in
// RescalingKeys must be present and numeric.
func NewCoefficients(values map[string]string) (Coefficients, error) {
	parsed := make(map[string]float64, len(RescalingKeys))
	for _, key := range RescalingKeys {
		raw, ok := values[key]
		if !ok || raw == "" {
			return Coefficients{}, fmt.Errorf("%s: %w", key, ErrMissingCoefficient)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Coefficients{}, fmt.Errorf("%s=%q: %w", key, raw, ErrInvalidCoefficient)
		}
		parsed[key] = v
	}
	return Coefficients{
		ReflectanceMultBand5: parsed[ReflectanceMultBand5],
		ReflectanceMultBand7: parsed[ReflectanceMultBand7],
		ReflectanceAddBand5:  parsed[ReflectanceAddBand5],
		ReflectanceAddBand7:  parsed[ReflectanceAddBand7],
		SunElevation:         parsed[SunElevation],
	}, nil
}

// LoadCoefficients extracts and validates the rescaling coefficients of an
// MTL file. The raw values are returned too so callers can report them.
func LoadCoefficients(path string) (Coefficients, map[string]string, error) {
	values, err := ExtractRescalingCoefficients(path, metadataKeys())
	if err != nil {
		return Coefficients{}, nil, err
	}
	c, err := NewCoefficients(values)
	if err != nil {
		return Coefficients{}, values, err
	}
	return c, values, nil
}

func (c Coefficients) String() string {
	return fmt.Sprintf("%s=%g %s=%g %s=%g %s=%g %s=%g",
		ReflectanceMultBand5, c.ReflectanceMultBand5,
		ReflectanceMultBand7, c.ReflectanceMultBand7,
		ReflectanceAddBand5, c.ReflectanceAddBand5,
		ReflectanceAddBand7, c.ReflectanceAddBand7,
		SunElevation, c.SunElevation)
}

func metadataKeys() []string {
	keys := make([]string, 0, len(RescalingKeys)+len(FootprintKeys))
	keys = append(keys, RescalingKeys...)
	return append(keys, FootprintKeys...)
}
