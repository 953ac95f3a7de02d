package delivery

import (
	"fmt"
	"path/filepath"

	"github.com/alexaac/amazon-fire-analysis/internal/landsat"
	"github.com/alexaac/amazon-fire-analysis/internal/raster"
	"github.com/alexaac/amazon-fire-analysis/output"
)

// CalculateNBR writes the Normalized Burn Ratio (x1000) of a scene folder.
// Band 5 and band 7 are converted to TOA reflectance with the coefficients
// of the folder's MTL file first. A folder without rasters is reported and
// yields a nil result.
func (p *Processor) CalculateNBR(dir, outputFile string) (*Result, error) {
	files, err := landsat.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(landsat.Rasters(files)) == 0 {
		p.Messages.Info(noRastersMessage)
		return nil, nil
	}

	scene, err := landsat.FindSceneFiles(files)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", dir, err)
	}

	metadata, err := p.loadMetadata(filepath.Join(dir, scene.Metadata))
	if err != nil {
		return nil, err
	}
	c := metadata.Coefficients
	p.Messages.Info("Rescaling coefficients: ")
	p.Messages.Info(c.String())

	band5, err := p.correctBand(filepath.Join(dir, scene.Band5), c.ReflectanceMultBand5, c.ReflectanceAddBand5, c.SunElevation)
	if err != nil {
		return nil, err
	}
	band7, err := p.correctBand(filepath.Join(dir, scene.Band7), c.ReflectanceMultBand7, c.ReflectanceAddBand7, c.SunElevation)
	if err != nil {
		return nil, err
	}

	nbr, err := landsat.CalculateNBR(band5, band7)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate nbr: %w", err)
	}

	out := outputPath(dir, outputFile, landsat.NBRName(scene.Band5))
	if err := p.Engine.WriteBand(out, nbr); err != nil {
		return nil, err
	}
	p.Messages.Info("Successfully created " + out + ".")

	result := &Result{Output: out}
	p.Messages.Info("Adding layers to map document")
	if err := p.Sink.RegisterOutput(out); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", out, err)
	}

	if p.Preview {
		preview := withSuffix(out, ".png")
		if err := output.CreatePreviewImage(nbr, output.BurnRatio, preview); err != nil {
			return nil, err
		}
		if err := p.register(result, preview); err != nil {
			return nil, err
		}
	}

	if p.Footprint {
		if footprint, ok := landsat.Footprint(metadata.Values); ok {
			path := withSuffix(out, "_footprint.geojson")
			props := map[string]interface{}{
				"scene":         landsat.SceneStem(scene.Band5, landsat.BandSuffix("5")),
				"nbr":           filepath.Base(out),
				"sun_elevation": c.SunElevation,
			}
			if lat, lon, err := landsat.FootprintCentroid(footprint); err == nil {
				props["center_lat"] = lat
				props["center_lon"] = lon
			}
			if err := output.CreateFootprintGeoJSON(path, footprint, props); err != nil {
				return nil, err
			}
			if err := p.register(result, path); err != nil {
				return nil, err
			}
		} else {
			p.Messages.Warn("scene corners missing from " + scene.Metadata + ", footprint skipped")
		}
	}

	p.Messages.Info("Done Processing")
	return result, nil
}

func (p *Processor) correctBand(path string, mult, add, sunElevation float64) (*raster.Band, error) {
	dn, err := p.Engine.ReadBand(path)
	if err != nil {
		return nil, err
	}
	corrected, err := landsat.CorrectTOAReflectance(dn, mult, add, sunElevation)
	if err != nil {
		return nil, fmt.Errorf("failed to correct %s: %w", filepath.Base(path), err)
	}
	return corrected, nil
}

func (p *Processor) loadMetadata(path string) (SceneMetadata, error) {
	var key string
	if p.Cache != nil {
		if k, err := p.Cache.FileKey(path); err == nil {
			key = k
			if cached, ok := p.Cache.Get(key); ok {
				return cached, nil
			}
		}
	}

	c, values, err := landsat.LoadCoefficients(path)
	if err != nil {
		return SceneMetadata{}, fmt.Errorf("metadata %s: %w", filepath.Base(path), err)
	}
	metadata := SceneMetadata{Coefficients: c, Values: values}

	if key != "" {
		if err := p.Cache.Set(key, metadata); err != nil {
			p.Messages.Warn(err.Error())
		}
	}
	return metadata, nil
}

func (p *Processor) register(result *Result, path string) error {
	if err := p.Sink.RegisterOutput(path); err != nil {
		return fmt.Errorf("failed to register %s: %w", path, err)
	}
	result.Extras = append(result.Extras, path)
	return nil
}
