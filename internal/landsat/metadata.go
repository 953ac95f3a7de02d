package landsat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ReflectanceMultBand5 = "REFLECTANCE_MULT_BAND_5"
	ReflectanceMultBand7 = "REFLECTANCE_MULT_BAND_7"
	ReflectanceAddBand5  = "REFLECTANCE_ADD_BAND_5"
	ReflectanceAddBand7  = "REFLECTANCE_ADD_BAND_7"
	SunElevation         = "SUN_ELEVATION"
)

// RescalingKeys are the MTL entries the burn ratio needs.
var RescalingKeys = []string{
	ReflectanceMultBand5,
	ReflectanceMultBand7,
	ReflectanceAddBand5,
	ReflectanceAddBand7,
	SunElevation,
}

// ExtractRescalingCoefficients reads the KEY = VALUE lines of an MTL file
// and returns the values of the requested keys. Keys absent from the file
// map to "".
func ExtractRescalingCoefficients(path string, keys []string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer f.Close()

	values, err := ParseRescalingCoefficients(f, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

func ParseRescalingCoefficients(r io.Reader, keys []string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		values[key] = ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "=") {
			continue
		}
		line = whitespace.ReplaceAllString(line, "")
		name, value, _ := strings.Cut(line, "=")
		if _, ok := values[name]; ok {
			values[name] = strings.Trim(value, `"`)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
