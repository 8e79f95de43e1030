package gfx

import "image"

// ProgramRole names a shader program in the device's handle arena.
type ProgramRole int

const (
	ProgramPoints ProgramRole = iota
	ProgramGrid
	ProgramLabels
	ProgramOverlay
	ProgramRoleCount
)

func (r ProgramRole) String() string {
	switch r {
	case ProgramPoints:
		return "points"
	case ProgramGrid:
		return "grid"
	case ProgramLabels:
		return "labels"
	case ProgramOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// MeshRole names a vertex array together with its buffers.
type MeshRole int

const (
	MeshPoints MeshRole = iota
	MeshGridX
	MeshGridY
	MeshLabelsX
	MeshLabelsY
	MeshOverlay
	MeshRoleCount
)

type TextureRole int

const (
	TextureNone TextureRole = iota - 1
	TextureGlyphs
	TextureOverlay
	TextureRoleCount
)

type ScalarType int

const (
	Float32 ScalarType = iota
	Float64
	Uint32
)

func (t ScalarType) Size() int {
	if t == Float64 {
		return 8
	}
	return 4
}

type Attribute struct {
	Location   uint32
	Components int
	Type       ScalarType
	Offset     int
}

// BufferLayout describes one vertex buffer; several attributes may be
// interleaved in it.
type BufferLayout struct {
	Stride     int
	Attributes []Attribute
}

// MeshLayout lists the buffers of a mesh. Upload calls address them by index.
type MeshLayout []BufferLayout

type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
)

// DrawCall carries every binding a draw needs. Devices bind all of them
// before drawing and never rely on what a previous call left bound.
type DrawCall struct {
	Program   ProgramRole
	Mesh      MeshRole
	Texture   TextureRole
	Primitive Primitive
	First     int
	Count     int
}

// Device is the GPU capability a plot drives. It owns every GPU object,
// indexed by role.
type Device interface {
	CreateProgram(role ProgramRole, vertexSource, fragmentSource string) error
	CreateMesh(role MeshRole, layout MeshLayout) error
	CreateTexture(role TextureRole, img *image.RGBA) error

	// Upload calls replace the whole content of a mesh buffer.
	UploadFloat32(mesh MeshRole, buffer int, data []float32)
	UploadFloat64(mesh MeshRole, buffer int, data []float64)
	UploadUint32(mesh MeshRole, buffer int, data []uint32)
	SetAttributeEnabled(mesh MeshRole, location uint32, enabled bool)

	Uniform(program ProgramRole, name string, values ...float32)
	UniformInt(program ProgramRole, name string, value int32)

	Viewport(width, height int)
	Clear(color RGB)
	PointSize(pixels float32)
	Draw(call DrawCall)

	// Release deletes every GPU object. The device is unusable afterwards.
	Release()
}
