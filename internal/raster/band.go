package raster

import (
	"errors"
	"fmt"
	"math"
)

type DataType int

const (
	Float32 DataType = iota
	Int16
	UInt16
	Int32
)

func (t DataType) String() string {
	switch t {
	case Float32:
		return "Float32"
	case Int16:
		return "Int16"
	case UInt16:
		return "UInt16"
	case Int32:
		return "Int32"
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// Integer no-data sentinels.
const (
	Int16NoData = math.MinInt16
	Int32NoData = math.MinInt32
)

var (
	ErrShapeMismatch = errors.New("raster bands have different dimensions")
	ErrEmptyBand     = errors.New("raster band has no pixels")
	ErrDivideByZero  = errors.New("raster division by zero")
)

// Geo carries the georeferencing of a band so derived rasters keep the
// placement of their inputs.
type Geo struct {
	GeoTransform [6]float64
	Projection   string
}

// Band is a single-band, row-major, in-memory raster. A pixel equal to
// NoData (or NaN when NoData is NaN) is treated as missing.
type Band struct {
	Width  int
	Height int
	Data   []float64
	NoData float64
	Type   DataType
	Geo    Geo
}

// NewBand allocates a band filled with its no-data value.
func NewBand(width, height int, dtype DataType, noData float64) *Band {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = noData
	}
	return &Band{
		Width:  width,
		Height: height,
		Data:   data,
		NoData: noData,
		Type:   dtype,
	}
}

// FromRows builds a Float32 band from a row slice. Handy for small fixtures.
func FromRows(rows [][]float64, noData float64) (*Band, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyBand
	}
	width := len(rows[0])
	b := &Band{
		Width:  width,
		Height: len(rows),
		Data:   make([]float64, 0, width*len(rows)),
		NoData: noData,
		Type:   Float32,
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), width, ErrShapeMismatch)
		}
		b.Data = append(b.Data, row...)
	}
	return b, nil
}

func (b *Band) At(x, y int) float64 {
	return b.Data[y*b.Width+x]
}

func (b *Band) IsNoData(v float64) bool {
	if math.IsNaN(b.NoData) {
		return math.IsNaN(v)
	}
	return v == b.NoData || math.IsNaN(v)
}

func (b *Band) Valid(x, y int) bool {
	return !b.IsNoData(b.At(x, y))
}

func (b *Band) SameShape(o *Band) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// like returns an empty band with the same shape and georeferencing.
func (b *Band) like(dtype DataType, noData float64) *Band {
	out := NewBand(b.Width, b.Height, dtype, noData)
	out.Geo = b.Geo
	return out
}

type Stats struct {
	Min   float64
	Max   float64
	Mean  float64
	Valid int
}

func (b *Band) Stats() Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, v := range b.Data {
		if b.IsNoData(v) {
			continue
		}
		s.Valid++
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	if s.Valid == 0 {
		return Stats{}
	}
	s.Mean = sum / float64(s.Valid)
	return s
}
