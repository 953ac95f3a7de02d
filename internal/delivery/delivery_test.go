package delivery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexaac/amazon-fire-analysis/internal/raster"
)

const (
	scene = "LC08_L1TP_232066_20190820_20190903_01_T1"

	sceneMTL = `GROUP = L1_METADATA_FILE
  GROUP = PRODUCT_METADATA
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
    SUN_ELEVATION = 90.0
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
)

// fakeEngine serves bands from memory and records what was written.
type fakeEngine struct {
	mu         sync.Mutex
	bands      map[string]*raster.Band
	written    map[string]*raster.Band
	composites map[string][]string
	readErr    error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		bands:      map[string]*raster.Band{},
		written:    map[string]*raster.Band{},
		composites: map[string][]string{},
	}
}

func (e *fakeEngine) ReadBand(path string) (*raster.Band, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readErr != nil {
		return nil, e.readErr
	}
	b, ok := e.bands[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return b, nil
}

func (e *fakeEngine) WriteBand(path string, band *raster.Band) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.written[path] = band
	return os.WriteFile(path, nil, 0o644)
}

func (e *fakeEngine) Composite(paths []string, output string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.composites[output] = paths
	return nil
}

type recordingMessenger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (m *recordingMessenger) Info(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

func (m *recordingMessenger) Warn(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, message)
}

type recordingSink struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (s *recordingSink) RegisterOutput(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return s.err
}

var errSinkDown = errors.New("sink down")

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
}

func rowBand(t *testing.T, values ...float64) *raster.Band {
	t.Helper()
	b, err := raster.FromRows([][]float64{values}, 0)
	require.NoError(t, err)
	b.Type = raster.UInt16
	return b
}

func newTestProcessor() (*Processor, *fakeEngine, *recordingMessenger, *recordingSink) {
	engine := newFakeEngine()
	messages := &recordingMessenger{}
	sink := &recordingSink{}
	return &Processor{Engine: engine, Sink: sink, Messages: messages}, engine, messages, sink
}
