package grid_test

import (
	"image"
	"math"
	"testing"

	"github.com/kjkrol/gokplot/pkg/grid"
)

func TestSpan_CountMatchesFormula(t *testing.T) {
	cases := []struct {
		name             string
		anchor, interval float64
		min, max         float64
		want             int
	}{
		{"anchor on min", 0, 4, 0, 16, 5},
		{"symmetric", 0, 5, -30, 30, 13},
		{"anchor outside", 100, 3, 0, 10, 4},
		{"anchor far below", -7, 2, 0, 0.5, 0},
		{"interval wider than span", 0.5, 10, 0, 1, 1},
		{"no line inside", 0.5, 10, 0.6, 1, 0},
		{"negative span values", 1, 0.25, -1, -0.5, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := grid.Spec{Anchor: tc.anchor, Interval: tc.interval}
			_, _, got := grid.Span(spec, tc.min, tc.max)
			formula := int(math.Floor((tc.max-tc.anchor)/tc.interval) - math.Ceil((tc.min-tc.anchor)/tc.interval) + 1)
			if formula < 0 {
				formula = 0
			}
			if got != tc.want || got != formula {
				t.Fatalf("Span count = %d, want %d (formula %d)", got, tc.want, formula)
			}
		})
	}
}

func TestPositions_PhasePlotAxis(t *testing.T) {
	got := grid.Positions(grid.Spec{Anchor: 0, Interval: 4}, 0, 16)
	want := []float64{0, 4, 8, 12, 16}
	if len(got) != len(want) {
		t.Fatalf("Positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Positions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPositions_NonPositiveInterval(t *testing.T) {
	for _, interval := range []float64{0, -1, math.NaN()} {
		if got := grid.Positions(grid.Spec{Interval: interval}, 0, 1); got != nil {
			t.Errorf("interval %v: Positions = %v, want none", interval, got)
		}
	}
}

func TestPositions_SnapsZero(t *testing.T) {
	got := grid.Positions(grid.Spec{Anchor: 0.3, Interval: 0.1}, -0.05, 0.05)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("Positions = %v, want [0]", got)
	}
	if math.Signbit(got[0]) {
		t.Fatalf("expected positive zero")
	}
}

func TestNormalize_Endpoints(t *testing.T) {
	bounds := [][2]float64{{0, 16}, {-30, 30}, {-1, 1}, {0.1, 0.7}, {-1e6, 3.3e7}}
	for _, b := range bounds {
		if got := grid.Normalize(b[0], b[0], b[1]); got != -1 {
			t.Errorf("Normalize(min) on %v = %v, want -1", b, got)
		}
		if got := grid.Normalize(b[1], b[0], b[1]); got != 1 {
			t.Errorf("Normalize(max) on %v = %v, want 1", b, got)
		}
	}
}

func TestLineVertices(t *testing.T) {
	x := grid.LineVertices(grid.AxisX, []float64{0, 8}, 0, 16)
	wantX := []float32{-1, -1, -1, 1, 0, -1, 0, 1}
	y := grid.LineVertices(grid.AxisY, []float64{30}, -30, 30)
	wantY := []float32{-1, 1, 1, 1}
	for i := range wantX {
		if x[i] != wantX[i] {
			t.Fatalf("x vertices = %v, want %v", x, wantX)
		}
	}
	for i := range wantY {
		if y[i] != wantY[i] {
			t.Fatalf("y vertices = %v, want %v", y, wantY)
		}
	}
}

func TestAutoSpec(t *testing.T) {
	spec := grid.AutoSpec(-2, 6, 0x808080)
	if spec.Anchor != -2 || spec.Interval != 2 || spec.Color != 0x808080 {
		t.Fatalf("AutoSpec = %+v", spec)
	}
	if _, _, n := grid.Span(spec, -2, 6); n != 5 {
		t.Fatalf("auto grid lines = %d, want 5", n)
	}
}

func TestSpan_DenseSpacingDrawsNothing(t *testing.T) {
	spec := grid.Spec{Anchor: 0, Interval: 1e-12}
	if _, _, count := grid.Span(spec, -1, 1); count != 0 {
		t.Fatalf("Span count = %d, want 0", count)
	}
	if !grid.Undrawable(spec, -1, 1) {
		t.Fatal("1e-12 spacing on [-1,1] not reported undrawable")
	}
	geo := grid.Build(grid.AxisX, spec, -1, 1, image.Pt(7, 13))
	if len(geo.Positions) != 0 || len(geo.Lines) != 0 || len(geo.Labels) != 0 {
		t.Fatalf("geometry not empty: %d positions", len(geo.Positions))
	}
}

func TestSpan_LineCap(t *testing.T) {
	spec := grid.Spec{Anchor: 0, Interval: 1}
	if _, _, count := grid.Span(spec, 0, grid.MaxLines-1); count != grid.MaxLines {
		t.Fatalf("Span count = %d, want %d", count, grid.MaxLines)
	}
	if _, _, count := grid.Span(spec, 0, grid.MaxLines); count != 0 {
		t.Fatalf("Span count over the cap = %d, want 0", count)
	}
}

func TestSpan_FarAnchor(t *testing.T) {
	for _, anchor := range []float64{1e30, -1e30} {
		spec := grid.Spec{Anchor: anchor, Interval: 0.5}
		if got := grid.Positions(spec, -1, 1); got != nil {
			t.Fatalf("anchor %g: positions %v", anchor, got)
		}
		if !grid.Undrawable(spec, -1, 1) {
			t.Fatalf("anchor %g not reported undrawable", anchor)
		}
	}
	// a far anchor on a matching interval still lands lines inside
	spec := grid.Spec{Anchor: 1e30, Interval: 1e30}
	if got := grid.Positions(spec, -1, 1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("positions %v, want [0]", got)
	}
}

func TestUndrawable_EmptyRange(t *testing.T) {
	if grid.Undrawable(grid.Spec{Anchor: 0.5, Interval: 10}, 0.6, 1) {
		t.Fatal("range without lines reported undrawable")
	}
}
