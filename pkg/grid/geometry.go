package grid

import "image"

// Geometry is everything needed to draw one axis's grid.
type Geometry struct {
	Positions []float64
	Lines     []float32
	Labels    []float32
}

func (g Geometry) LineVertexCount() int {
	return len(g.Lines) / 2
}

func (g Geometry) LabelVertexCount() int {
	return len(g.Labels) / FloatsPerVertex
}

func Build(axis Axis, spec Spec, min, max float64, cell image.Point) Geometry {
	positions := Positions(spec, min, max)
	return Geometry{
		Positions: positions,
		Lines:     LineVertices(axis, positions, min, max),
		Labels:    LabelVertices(axis, positions, min, max, cell),
	}
}
