package gdal

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/alexaac/amazon-fire-analysis/internal/raster"
)

var registerOnce sync.Once

var _ raster.Engine = (*Engine)(nil)

// Engine is the raster.Engine backed by libgdal through godal.
type Engine struct {
	// CreationOptions are passed to the GTiff driver, e.g. "COMPRESS=LZW".
	CreationOptions []string
}

func NewEngine(creationOptions ...string) *Engine {
	registerOnce.Do(godal.RegisterAll)
	return &Engine{CreationOptions: creationOptions}
}

func quietWarnings() godal.ErrorHandler {
	return func(ec godal.ErrorCategory, code int, msg string) error {
		if ec <= godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}
}

func (g *Engine) ReadBand(path string) (*raster.Band, error) {
	ds, err := godal.Open(path, godal.RasterOnly(), godal.ErrLogger(quietWarnings()))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("raster %s has no bands", path)
	}
	band := bands[0]
	structure := band.Structure()
	width, height := structure.SizeX, structure.SizeY

	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster %s: %w", path, err)
	}

	noData, ok := band.NoData()
	if !ok {
		// Landsat level-1 bands use 0 as fill without declaring it.
		noData = 0
	}

	out := &raster.Band{
		Width:  width,
		Height: height,
		Data:   data,
		NoData: noData,
		Type:   fromGodalType(structure.DataType),
	}
	if gt, err := ds.GeoTransform(); err == nil {
		out.Geo.GeoTransform = gt
	}
	out.Geo.Projection = ds.Projection()
	return out, nil
}

func (g *Engine) WriteBand(path string, band *raster.Band) error {
	ds, err := godal.Create(godal.GTiff, path, 1, toGodalType(band.Type), band.Width, band.Height,
		godal.CreationOption(g.CreationOptions...), godal.ErrLogger(quietWarnings()))
	if err != nil {
		return fmt.Errorf("failed to create raster %s: %w", path, err)
	}

	if band.Geo.Projection != "" {
		if err := ds.SetProjection(band.Geo.Projection); err != nil {
			ds.Close()
			return fmt.Errorf("failed to set projection: %w", err)
		}
	}
	if band.Geo.GeoTransform != ([6]float64{}) {
		if err := ds.SetGeoTransform(band.Geo.GeoTransform); err != nil {
			ds.Close()
			return fmt.Errorf("failed to set geotransform: %w", err)
		}
	}

	out := ds.Bands()[0]
	if err := out.SetNoData(band.NoData); err != nil {
		ds.Close()
		return fmt.Errorf("failed to set nodata: %w", err)
	}
	if err := out.Write(0, 0, band.Data, band.Width, band.Height); err != nil {
		ds.Close()
		return fmt.Errorf("failed to write raster %s: %w", path, err)
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("failed to flush raster %s: %w", path, err)
	}
	return nil
}

// Composite stacks the first band of every input, in order, into a
// multi-band GeoTIFF.
func (g *Engine) Composite(paths []string, output string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no bands to composite")
	}
	vrtName := "/vsimem/" + strings.TrimSuffix(filepath.Base(output), filepath.Ext(output)) + ".vrt"
	vrt, err := godal.BuildVRT(vrtName, paths, []string{"-separate"}, godal.ErrLogger(quietWarnings()))
	if err != nil {
		return fmt.Errorf("failed to build composite vrt: %w", err)
	}
	defer func() {
		vrt.Close()
		godal.VSIUnlink(vrtName)
	}()

	switches := make([]string, 0, 2*len(g.CreationOptions))
	for _, co := range g.CreationOptions {
		switches = append(switches, "-co", co)
	}
	ds, err := vrt.Translate(output, switches, godal.GTiff, godal.ErrLogger(quietWarnings()))
	if err != nil {
		return fmt.Errorf("failed to write composite %s: %w", output, err)
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("failed to flush composite %s: %w", output, err)
	}
	return nil
}

func toGodalType(t raster.DataType) godal.DataType {
	switch t {
	case raster.Int16:
		return godal.Int16
	case raster.UInt16:
		return godal.UInt16
	case raster.Int32:
		return godal.Int32
	}
	return godal.Float32
}

func fromGodalType(t godal.DataType) raster.DataType {
	switch t {
	case godal.Int16:
		return raster.Int16
	case godal.UInt16:
		return raster.UInt16
	case godal.Int32:
		return raster.Int32
	}
	return raster.Float32
}
