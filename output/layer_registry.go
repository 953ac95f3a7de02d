package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jonboulle/clockwork"
)

// Sink receives every file a pipeline produces so it can be shown to the
// user or handed to another tool.
type Sink interface {
	RegisterOutput(path string) error
}

// Sinks registers an output with each sink in turn. All sinks are called
// even when one fails.
type Sinks []Sink

func (s Sinks) RegisterOutput(path string) error {
	var errs []error
	for _, sink := range s {
		if err := sink.RegisterOutput(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Layer struct {
	Name    string    `csv:"name"`
	Path    string    `csv:"path"`
	Kind    string    `csv:"kind"`
	AddedAt time.Time `csv:"added_at"`
}

// LayerRegistry is a CSV manifest of produced layers, the stand-in for a
// map document's layer list. Newer layers go to the end of the file and
// draw on top.
type LayerRegistry struct {
	path  string
	clock clockwork.Clock
	mu    sync.Mutex
}

func NewLayerRegistry(path string, clock clockwork.Clock) *LayerRegistry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LayerRegistry{path: path, clock: clock}
}

func (r *LayerRegistry) Path() string {
	return r.path
}

func (r *LayerRegistry) RegisterOutput(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve layer path: %w", err)
	}
	layer := Layer{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:    abs,
		Kind:    layerKind(path),
		AddedAt: r.clock.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create layer registry directory: %w", err)
	}
	info, statErr := os.Stat(r.path)
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open layer registry: %w", err)
	}
	defer file.Close()

	rows := []Layer{layer}
	if statErr == nil && info.Size() > 0 {
		err = gocsv.MarshalWithoutHeaders(&rows, file)
	} else {
		err = gocsv.Marshal(&rows, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write layer registry: %w", err)
	}
	return nil
}

// Layers returns the registered layers in registration order.
func (r *LayerRegistry) Layers() ([]Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Layer{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open layer registry: %w", err)
	}
	defer file.Close()

	layers := []Layer{}
	if err := gocsv.UnmarshalFile(file, &layers); err != nil {
		return nil, fmt.Errorf("failed to read layer registry: %w", err)
	}
	return layers, nil
}

func layerKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return "raster"
	case ".png", ".jpeg", ".jpg":
		return "image"
	case ".geojson", ".json":
		return "vector"
	}
	return "file"
}
