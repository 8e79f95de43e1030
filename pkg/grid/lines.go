// Package grid derives gridline geometry and numeric axis labels from axis
// bounds and a spacing spec.
package grid

import (
	"math"

	"github.com/kjkrol/gokplot/pkg/gfx"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Spec places one line exactly at Anchor and the others at integer
// multiples of Interval from it.
type Spec struct {
	Anchor   float64
	Interval float64
	Color    gfx.RGB
}

func (s Spec) Valid() bool {
	return s.Interval > 0 && !math.IsInf(s.Interval, 0) && !math.IsNaN(s.Anchor) && !math.IsInf(s.Anchor, 0)
}

// AutoSpec is the spacing used while an axis follows its bounds:
// anchored at the minimum, four intervals across the span.
func AutoSpec(min, max float64, color gfx.RGB) Spec {
	return Spec{Anchor: min, Interval: (max - min) / 4, Color: color}
}

// MaxLines caps the lines generated per axis. A spacing that would need
// more draws no lines at all.
const MaxLines = 1024

// maxIndex keeps line indices exact in float64 and safe to convert to int.
const maxIndex = 1 << 53

func lineRange(spec Spec, min, max float64) (lo, hi float64, ok bool) {
	if !spec.Valid() {
		return 0, 0, false
	}
	lo = math.Ceil((min - spec.Anchor) / spec.Interval)
	hi = math.Floor((max - spec.Anchor) / spec.Interval)
	if math.IsNaN(lo) || math.IsNaN(hi) || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// Undrawable reports whether lines exist inside [min, max] but cannot be
// generated: more than MaxLines of them, or indices too far from the
// anchor to place exactly.
func Undrawable(spec Spec, min, max float64) bool {
	lo, hi, ok := lineRange(spec, min, max)
	if !ok {
		return false
	}
	return hi-lo+1 > MaxLines || math.Abs(lo) > maxIndex || math.Abs(hi) > maxIndex
}

// Span returns the index range of lines inside [min, max]. count is zero
// when no line falls inside or the range is Undrawable.
func Span(spec Spec, min, max float64) (kMin, kMax, count int) {
	lo, hi, ok := lineRange(spec, min, max)
	if !ok || Undrawable(spec, min, max) {
		return 0, -1, 0
	}
	kMin, kMax = int(lo), int(hi)
	return kMin, kMax, kMax - kMin + 1
}

// Positions returns the coordinates of every visible line in ascending order.
func Positions(spec Spec, min, max float64) []float64 {
	kMin, kMax, count := Span(spec, min, max)
	if count == 0 {
		return nil
	}
	// values within this distance of zero are rounding noise from k*interval
	snap := spec.Interval * 1e-9
	out := make([]float64, 0, count)
	for k := kMin; k <= kMax; k++ {
		v := spec.Anchor + float64(k)*spec.Interval
		if math.Abs(v) < snap {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

// Normalize maps v from [min, max] onto the device range [-1, 1].
func Normalize(v, min, max float64) float64 {
	return 2*(v-min)/(max-min) - 1
}

// LineVertices returns two device-space endpoints per line: vertical lines
// for the x axis, horizontal for the y axis.
func LineVertices(axis Axis, positions []float64, min, max float64) []float32 {
	out := make([]float32, 0, len(positions)*4)
	for _, v := range positions {
		n := float32(Normalize(v, min, max))
		if axis == AxisX {
			out = append(out, n, -1, n, 1)
		} else {
			out = append(out, -1, n, 1, n)
		}
	}
	return out
}
