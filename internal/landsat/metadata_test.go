package landsat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMTL = `GROUP = L1_METADATA_FILE
  GROUP = PRODUCT_METADATA
    LANDSAT_PRODUCT_ID = "LC08_L1TP_232066_20190820_20190903_01_T1"
    CORNER_UL_LAT_PRODUCT = -8.13294
    CORNER_UL_LON_PRODUCT = -63.81548
    CORNER_UR_LAT_PRODUCT = -8.13712
    CORNER_UR_LON_PRODUCT = -61.72381
    CORNER_LL_LAT_PRODUCT = -10.23425
    CORNER_LL_LON_PRODUCT = -63.82387
    CORNER_LR_LAT_PRODUCT = -10.23953
    CORNER_LR_LON_PRODUCT = -61.72089
  END_GROUP = PRODUCT_METADATA
  GROUP = IMAGE_ATTRIBUTES
    SUN_ELEVATION = 54.76665709
  END_GROUP = IMAGE_ATTRIBUTES
  GROUP = RADIOMETRIC_RESCALING
    REFLECTANCE_MULT_BAND_5 = 2.0000E-05
    REFLECTANCE_MULT_BAND_7 = 2.0000E-05
    REFLECTANCE_ADD_BAND_5 = -0.100000
    REFLECTANCE_ADD_BAND_7 = -0.100000
  END_GROUP = RADIOMETRIC_RESCALING
END_GROUP = L1_METADATA_FILE
END
`

func TestParseRescalingCoefficients(t *testing.T) {
	in := "REFLECTANCE_MULT_BAND_5 = 0.00002\nJUNK=1\n"

	got, err := ParseRescalingCoefficients(strings.NewReader(in), RescalingKeys)
	require.NoError(t, err)

	assert.Equal(t, "0.00002", got[ReflectanceMultBand5])
	assert.NotContains(t, got, "JUNK")
	assert.Equal(t, "", got[SunElevation])
	assert.Len(t, got, len(RescalingKeys))
}

func TestParseRescalingCoefficients_StripsWhitespaceAndQuotes(t *testing.T) {
	in := "\t SUN_ELEVATION\t=  \"54.7\" \nno equals here\n"

	got, err := ParseRescalingCoefficients(strings.NewReader(in), []string{SunElevation})
	require.NoError(t, err)
	assert.Equal(t, "54.7", got[SunElevation])
}

func TestParseRescalingCoefficients_LastValueWins(t *testing.T) {
	in := "SUN_ELEVATION = 1\nSUN_ELEVATION = 2\n"

	got, err := ParseRescalingCoefficients(strings.NewReader(in), []string{SunElevation})
	require.NoError(t, err)
	assert.Equal(t, "2", got[SunElevation])
}

func TestExtractRescalingCoefficients_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), scene+"_MTL.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleMTL), 0o644))

	got, err := ExtractRescalingCoefficients(path, RescalingKeys)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		ReflectanceMultBand5: "2.0000E-05",
		ReflectanceMultBand7: "2.0000E-05",
		ReflectanceAddBand5:  "-0.100000",
		ReflectanceAddBand7:  "-0.100000",
		SunElevation:         "54.76665709",
	}, got)
}

func TestExtractRescalingCoefficients_MissingFile(t *testing.T) {
	_, err := ExtractRescalingCoefficients(filepath.Join(t.TempDir(), "none_MTL.txt"), RescalingKeys)
	require.Error(t, err)
}

func TestLoadCoefficients(t *testing.T) {
	path := filepath.Join(t.TempDir(), scene+"_MTL.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleMTL), 0o644))

	c, values, err := LoadCoefficients(path)
	require.NoError(t, err)
	assert.Equal(t, Coefficients{
		ReflectanceMultBand5: 2e-5,
		ReflectanceMultBand7: 2e-5,
		ReflectanceAddBand5:  -0.1,
		ReflectanceAddBand7:  -0.1,
		SunElevation:         54.76665709,
	}, c)
	assert.Equal(t, "-8.13294", values["CORNER_UL_LAT_PRODUCT"])
}

func TestFootprint(t *testing.T) {
	values, err := ParseRescalingCoefficients(strings.NewReader(sampleMTL), FootprintKeys)
	require.NoError(t, err)

	poly, ok := Footprint(values)
	require.True(t, ok)
	require.Len(t, poly, 1)

	ring := poly[0]
	require.Len(t, ring, 5)
	assert.Equal(t, -63.81548, ring[0].X())
	assert.Equal(t, -8.13294, ring[0].Y())
	assert.Equal(t, -61.72089, ring[2].X())
	assert.True(t, ring.Closed())
}

func TestFootprint_Incomplete(t *testing.T) {
	_, ok := Footprint(map[string]string{"CORNER_UL_LAT_PRODUCT": "1"})
	assert.False(t, ok)
}

func TestFootprintCentroid(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	lat, lon, err := FootprintCentroid(square)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, lat, 1e-9)
	assert.InDelta(t, 1.0, lon, 1e-9)

	line := orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}
	_, _, err = FootprintCentroid(line)
	assert.ErrorIs(t, err, ErrDegenerateFootprint)
}
