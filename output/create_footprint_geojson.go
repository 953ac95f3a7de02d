package output

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CreateFootprintGeoJSON writes the scene footprint as a one-feature
// FeatureCollection.
func CreateFootprintGeoJSON(path string, footprint orb.Polygon, properties map[string]interface{}) error {
	feature := geojson.NewFeature(footprint)
	for k, v := range properties {
		feature.Properties[k] = v
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode footprint: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write footprint %s: %w", path, err)
	}
	return nil
}
