package raster

import (
	"fmt"
	"math"
)

// Every operation here returns a new Float32 band with NaN no-data and
// leaves its inputs untouched. Pixels that are no-data in an input stay
// no-data in the result.

// SetNull masks every valid pixel for which pred returns true.
func (b *Band) SetNull(pred func(v float64) bool) *Band {
	out := b.like(Float32, math.NaN())
	for i, v := range b.Data {
		if b.IsNoData(v) || pred(v) {
			continue
		}
		out.Data[i] = v
	}
	return out
}

// Map applies f to every valid pixel. A non-finite result becomes no-data.
func (b *Band) Map(f func(v float64) float64) *Band {
	out := b.like(Float32, math.NaN())
	for i, v := range b.Data {
		if b.IsNoData(v) {
			continue
		}
		r := f(v)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out.Data[i] = r
	}
	return out
}

func (b *Band) Scale(k float64) *Band {
	return b.Map(func(v float64) float64 { return v * k })
}

func (b *Band) Shift(c float64) *Band {
	return b.Map(func(v float64) float64 { return v + c })
}

func (b *Band) Divide(k float64) (*Band, error) {
	if k == 0 {
		return nil, ErrDivideByZero
	}
	return b.Map(func(v float64) float64 { return v / k }), nil
}

// Combine evaluates f pixel by pixel over two bands of the same shape.
// f reports ok=false to mark the output pixel as no-data.
func Combine(a, b *Band, dtype DataType, noData float64, f func(x, y float64) (float64, bool)) (*Band, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%dx%d vs %dx%d: %w", a.Width, a.Height, b.Width, b.Height, ErrShapeMismatch)
	}
	out := a.like(dtype, noData)
	for i := range a.Data {
		x, y := a.Data[i], b.Data[i]
		if a.IsNoData(x) || b.IsNoData(y) {
			continue
		}
		r, ok := f(x, y)
		if !ok || math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out.Data[i] = r
	}
	return out, nil
}
