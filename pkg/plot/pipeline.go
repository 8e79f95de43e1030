package plot

import "github.com/kjkrol/gokplot/pkg/gfx"

// pointPipeline owns the point series buffers. Every submit replaces them
// whole; only the vertex count survives for redraws without new data.
type pointPipeline struct {
	device    gfx.Device
	count     int
	custom    bool
	connected bool
	size      float32
}

func newPointPipeline(device gfx.Device) *pointPipeline {
	return &pointPipeline{device: device, size: 1}
}

// submit uploads the first n points, n being the shortest of the supplied
// slices. A nil colors slice selects the uniform default color for the
// next draws instead of a per-vertex color.
func (pp *pointPipeline) submit(x, y []float64, colors []uint32) {
	n := min(len(x), len(y))
	pp.custom = colors != nil
	if pp.custom {
		n = min(n, len(colors))
	}
	pp.device.UploadFloat64(gfx.MeshPoints, pointBufferX, x[:n])
	pp.device.UploadFloat64(gfx.MeshPoints, pointBufferY, y[:n])
	if pp.custom {
		pp.device.UploadUint32(gfx.MeshPoints, pointBufferColor, colors[:n])
	}
	pp.device.SetAttributeEnabled(gfx.MeshPoints, locPointColor, pp.custom)
	pp.count = n
	Logger().Debug("points submitted", "count", n, "customColors", pp.custom)
}

func (pp *pointPipeline) draw() {
	useCustom := int32(0)
	if pp.custom {
		useCustom = 1
	}
	pp.device.UniformInt(gfx.ProgramPoints, "uUseCustom", useCustom)
	primitive := gfx.Points
	if pp.connected {
		primitive = gfx.LineStrip
	} else {
		pp.device.PointSize(pp.size)
	}
	pp.device.Draw(gfx.DrawCall{
		Program:   gfx.ProgramPoints,
		Mesh:      gfx.MeshPoints,
		Texture:   gfx.TextureNone,
		Primitive: primitive,
		Count:     pp.count,
	})
}
