package plot

import (
	"fmt"
	"image"

	"github.com/kjkrol/gokplot/pkg/gfx"
	"github.com/kjkrol/gokplot/pkg/grid"
)

// ResourceLoader resolves named shader sources and images.
type ResourceLoader interface {
	Shader(name string) (string, error)
	Image(name string) (*image.RGBA, error)
}

const HelpImage = "helpmessage.png"

var programSources = [gfx.ProgramRoleCount]struct{ vertex, fragment string }{
	gfx.ProgramPoints:  {"points.vert.glsl", "points.frag.glsl"},
	gfx.ProgramGrid:    {"grid.vert.glsl", "grid.frag.glsl"},
	gfx.ProgramLabels:  {"labels.vert.glsl", "labels.frag.glsl"},
	gfx.ProgramOverlay: {"overlay.vert.glsl", "overlay.frag.glsl"},
}

// point mesh buffers and attribute locations
const (
	pointBufferX = iota
	pointBufferY
	pointBufferColor
)

const (
	locPointX uint32 = iota
	locPointY
	locPointColor
)

var (
	lineLayout = gfx.MeshLayout{
		{Stride: 8, Attributes: []gfx.Attribute{{Location: 0, Components: 2, Type: gfx.Float32}}},
	}
	labelLayout = gfx.MeshLayout{
		{Stride: grid.FloatsPerVertex * 4, Attributes: []gfx.Attribute{
			{Location: 0, Components: 2, Type: gfx.Float32, Offset: 0},
			{Location: 1, Components: 2, Type: gfx.Float32, Offset: 8},
			{Location: 2, Components: 2, Type: gfx.Float32, Offset: 16},
		}},
	}
	meshLayouts = [gfx.MeshRoleCount]gfx.MeshLayout{
		gfx.MeshPoints: {
			{Stride: 8, Attributes: []gfx.Attribute{{Location: locPointX, Components: 1, Type: gfx.Float64}}},
			{Stride: 8, Attributes: []gfx.Attribute{{Location: locPointY, Components: 1, Type: gfx.Float64}}},
			{Stride: 4, Attributes: []gfx.Attribute{{Location: locPointColor, Components: 1, Type: gfx.Uint32}}},
		},
		gfx.MeshGridX:   lineLayout,
		gfx.MeshGridY:   lineLayout,
		gfx.MeshLabelsX: labelLayout,
		gfx.MeshLabelsY: labelLayout,
		gfx.MeshOverlay: lineLayout,
	}
	// unit square as two triangles; the overlay shader scales it to the
	// image's pixel size
	overlayQuad = []float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
)

// loadResources compiles every program, allocates every mesh and uploads
// the textures. It stops at the first failure.
func (p *Plot) loadResources(loader ResourceLoader) error {
	for role, src := range programSources {
		vertex, err := loader.Shader(src.vertex)
		if err != nil {
			return fmt.Errorf("load %s: %w", src.vertex, err)
		}
		fragment, err := loader.Shader(src.fragment)
		if err != nil {
			return fmt.Errorf("load %s: %w", src.fragment, err)
		}
		if err := p.device.CreateProgram(gfx.ProgramRole(role), vertex, fragment); err != nil {
			return fmt.Errorf("%s program: %w", gfx.ProgramRole(role), err)
		}
	}
	for role, layout := range meshLayouts {
		if err := p.device.CreateMesh(gfx.MeshRole(role), layout); err != nil {
			return fmt.Errorf("mesh %d: %w", role, err)
		}
	}

	p.atlas = grid.NewAtlas()
	if err := p.device.CreateTexture(gfx.TextureGlyphs, p.atlas.Image); err != nil {
		return fmt.Errorf("glyph texture: %w", err)
	}
	help, err := loader.Image(HelpImage)
	if err != nil {
		return fmt.Errorf("load %s: %w", HelpImage, err)
	}
	if err := p.device.CreateTexture(gfx.TextureOverlay, help); err != nil {
		return fmt.Errorf("overlay texture: %w", err)
	}
	size := help.Bounds().Size()
	p.device.UploadFloat32(gfx.MeshOverlay, 0, overlayQuad)
	p.device.Uniform(gfx.ProgramOverlay, "uImgDims", float32(size.X), float32(size.Y))
	p.device.UniformInt(gfx.ProgramOverlay, "uImage", 0)
	p.device.UniformInt(gfx.ProgramLabels, "uGlyphs", 0)
	return nil
}
