package delivery

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alexaac/amazon-fire-analysis/internal/cache"
	"github.com/alexaac/amazon-fire-analysis/internal/landsat"
	"github.com/alexaac/amazon-fire-analysis/internal/raster"
	"github.com/alexaac/amazon-fire-analysis/internal/ui"
	"github.com/alexaac/amazon-fire-analysis/output"
)

const noRastersMessage = "There are no raster files in the workspace."

var ErrNoMatchingBands = errors.New("no raster files match the requested bands")

// SceneMetadata is what gets cached per MTL file.
type SceneMetadata struct {
	Coefficients landsat.Coefficients `json:"coefficients"`
	Values       map[string]string    `json:"values"`
}

// Processor runs the scene pipelines. Engine, Sink and Messages are
// required; the rest is optional.
type Processor struct {
	Engine   raster.Engine
	Sink     output.Sink
	Messages ui.Messenger

	// Cache skips re-parsing MTL files that have not changed.
	Cache *cache.FileCache[SceneMetadata]
	// Preview writes a PNG quicklook next to every NBR raster.
	Preview bool
	// Footprint writes the scene footprint polygon next to every NBR raster.
	Footprint bool
}

// Result lists what a pipeline wrote. Output is the main raster.
type Result struct {
	Output string
	Extras []string
}

func (r *Result) Files() []string {
	return append([]string{r.Output}, r.Extras...)
}

func outputPath(dir, outputFile, fallback string) string {
	if outputFile == "" {
		return filepath.Join(dir, fallback)
	}
	if filepath.IsAbs(outputFile) {
		return outputFile
	}
	return filepath.Join(dir, outputFile)
}

func withSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
