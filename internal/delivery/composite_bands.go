package delivery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexaac/amazon-fire-analysis/internal/landsat"
)

// CompositeBands stacks the requested bands of a scene folder into one
// multi-band raster. bands is a comma separated list such as "4,3,2".
// A folder without rasters is reported and yields a nil result.
func (p *Processor) CompositeBands(dir, outputFile, bands string) (*Result, error) {
	rasters, err := landsat.ListRasters(dir)
	if err != nil {
		return nil, err
	}
	if len(rasters) == 0 {
		p.Messages.Info(noRastersMessage)
		return nil, nil
	}

	ids := landsat.ParseBandList(bands)
	matched := landsat.FilterBands(rasters, ids)
	if len(matched) == 0 {
		return nil, fmt.Errorf("bands %s in %s: %w", strings.Join(ids, ","), dir, ErrNoMatchingBands)
	}

	paths := make([]string, len(matched))
	for i, name := range matched {
		paths[i] = filepath.Join(dir, name)
	}

	out := outputPath(dir, outputFile, landsat.CompositeName(matched[0]))
	if err := p.Engine.Composite(paths, out); err != nil {
		return nil, fmt.Errorf("failed to composite %s: %w", dir, err)
	}
	p.Messages.Info("Successfully created " + out + ".")

	p.Messages.Info("Adding layer to map document")
	if err := p.Sink.RegisterOutput(out); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", out, err)
	}

	p.Messages.Info("Done Processing")
	return &Result{Output: out}, nil
}
