package output

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/alexaac/amazon-fire-analysis/internal/raster"
)

type Palette int

const (
	// Greyscale stretches the valid range of the band from black to white.
	Greyscale Palette = iota
	// BurnRatio colours scaled NBR values from red (burnt, <= -500) through
	// yellow (0) to green (>= 500).
	BurnRatio
)

// CreatePreviewImage renders a PNG quicklook of band. No-data pixels are
// left transparent.
func CreatePreviewImage(band *raster.Band, palette Palette, path string) error {
	dc := gg.NewContext(band.Width, band.Height)
	stats := band.Stats()

	for y := 0; y < band.Height; y++ {
		for x := 0; x < band.Width; x++ {
			v := band.At(x, y)
			if band.IsNoData(v) {
				continue
			}
			r, g, b := colorFor(palette, v, stats)
			dc.SetRGB(r, g, b)
			dc.SetPixel(x, y)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save preview %s: %w", path, err)
	}
	return nil
}

func colorFor(palette Palette, v float64, stats raster.Stats) (float64, float64, float64) {
	if palette == BurnRatio {
		t := clamp((v + 500) / 1000)
		if t < 0.5 {
			return 1, t * 2, 0
		}
		return 1 - (t-0.5)*2, 1, 0
	}
	grey := 1.0
	if stats.Max > stats.Min {
		grey = clamp((v - stats.Min) / (stats.Max - stats.Min))
	}
	return grey, grey, grey
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
