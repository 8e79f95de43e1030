package plot

import (
	"image"

	"github.com/kjkrol/gokplot/pkg/gfx"
	"github.com/kjkrol/gokplot/pkg/grid"
)

// axisGrid is one axis's gridlines and labels as uploaded to the device.
type axisGrid struct {
	axis       grid.Axis
	lineMesh   gfx.MeshRole
	labelMesh  gfx.MeshRole
	spec       grid.Spec
	auto       bool
	lines      int
	labelVerts int
}

func newAxisGrid(axis grid.Axis, color gfx.RGB) axisGrid {
	g := axisGrid{axis: axis, auto: true, spec: grid.Spec{Color: color}}
	if axis == grid.AxisX {
		g.lineMesh, g.labelMesh = gfx.MeshGridX, gfx.MeshLabelsX
	} else {
		g.lineMesh, g.labelMesh = gfx.MeshGridY, gfx.MeshLabelsY
	}
	return g
}

func (g *axisGrid) rebuild(device gfx.Device, lo, hi float64, cell image.Point) {
	if grid.Undrawable(g.spec, lo, hi) {
		Logger().Warn("grid spacing too dense for bounds, drawing no lines", "axis", g.axis,
			"anchor", g.spec.Anchor, "interval", g.spec.Interval, "min", lo, "max", hi, "maxLines", grid.MaxLines)
	}
	geo := grid.Build(g.axis, g.spec, lo, hi, cell)
	device.UploadFloat32(g.lineMesh, 0, geo.Lines)
	device.UploadFloat32(g.labelMesh, 0, geo.Labels)
	g.lines = len(geo.Positions)
	g.labelVerts = geo.LabelVertexCount()
	Logger().Debug("grid rebuilt", "axis", g.axis, "anchor", g.spec.Anchor,
		"interval", g.spec.Interval, "lines", g.lines, "auto", g.auto)
}

func (g *axisGrid) drawLines(device gfx.Device) {
	c := g.spec.Color.Floats()
	device.Uniform(gfx.ProgramGrid, "uColor", c[0], c[1], c[2])
	device.Draw(gfx.DrawCall{
		Program:   gfx.ProgramGrid,
		Mesh:      g.lineMesh,
		Texture:   gfx.TextureNone,
		Primitive: gfx.Lines,
		Count:     g.lines * 2,
	})
}

func (g *axisGrid) drawLabels(device gfx.Device) {
	c := g.spec.Color.Floats()
	device.Uniform(gfx.ProgramLabels, "uColor", c[0], c[1], c[2])
	device.Draw(gfx.DrawCall{
		Program:   gfx.ProgramLabels,
		Mesh:      g.labelMesh,
		Texture:   gfx.TextureGlyphs,
		Primitive: gfx.Triangles,
		Count:     g.labelVerts,
	})
}
