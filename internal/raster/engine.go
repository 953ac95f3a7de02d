package raster

// Engine is the external raster engine the pipelines delegate file I/O to.
type Engine interface {
	ReadBand(path string) (*Band, error)
	WriteBand(path string, band *Band) error
	Composite(paths []string, output string) error
}
