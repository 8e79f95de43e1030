//go:build !js

package renderer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/gokplot/pkg/gfx"
)

var (
	ErrCompile = errors.New("shader compile error")
	ErrLink    = errors.New("program link error")
)

// Device is the OpenGL 3.3 core implementation of gfx.Device. Every GPU
// object lives in a role-indexed slot; operations bind what they use
// instead of trusting whatever a previous call left bound.
type Device struct {
	programs [gfx.ProgramRoleCount]uint32
	meshes   [gfx.MeshRoleCount]meshState
	textures [gfx.TextureRoleCount]uint32
	uniforms map[uniformKey]int32
	log      *slog.Logger
}

type meshState struct {
	vao  uint32
	vbos []uint32
}

type uniformKey struct {
	program gfx.ProgramRole
	name    string
}

// NewDevice loads the GL entry points for the current context. It must be
// called after the window's context was made current.
func NewDevice(log *slog.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	return &Device{
		uniforms: make(map[uniformKey]int32),
		log:      log,
	}, nil
}

func (d *Device) CreateProgram(role gfx.ProgramRole, vertexSource, fragmentSource string) error {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return fmt.Errorf("vertex stage: %w", err)
	}
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return fmt.Errorf("fragment stage: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return fmt.Errorf("%w: %s", ErrLink, strings.TrimRight(log, "\x00"))
	}
	d.programs[role] = program
	d.log.Debug("program linked", "role", role)
	return nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *Device) CreateMesh(role gfx.MeshRole, layout gfx.MeshLayout) error {
	state := &d.meshes[role]
	gl.GenVertexArrays(1, &state.vao)
	gl.BindVertexArray(state.vao)
	state.vbos = make([]uint32, len(layout))
	gl.GenBuffers(int32(len(layout)), &state.vbos[0])
	for i, buffer := range layout {
		gl.BindBuffer(gl.ARRAY_BUFFER, state.vbos[i])
		for _, attr := range buffer.Attributes {
			offset := gl.PtrOffset(attr.Offset)
			stride := int32(buffer.Stride)
			size := int32(attr.Components)
			switch attr.Type {
			case gfx.Uint32:
				gl.VertexAttribIPointer(attr.Location, size, gl.UNSIGNED_INT, stride, offset)
			case gfx.Float64:
				gl.VertexAttribPointer(attr.Location, size, gl.DOUBLE, false, stride, offset)
			default:
				gl.VertexAttribPointer(attr.Location, size, gl.FLOAT, false, stride, offset)
			}
			gl.EnableVertexAttribArray(attr.Location)
		}
	}
	gl.BindVertexArray(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("create mesh %d: gl error 0x%x", role, code)
	}
	return nil
}

func (d *Device) CreateTexture(role gfx.TextureRole, img *image.RGBA) error {
	if img == nil || img.Rect.Empty() {
		return fmt.Errorf("texture %d: empty image", role)
	}
	filter := int32(gl.LINEAR)
	if role == gfx.TextureGlyphs {
		filter = gl.NEAREST
	}
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	d.textures[role] = texture
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("create texture %d: gl error 0x%x", role, code)
	}
	return nil
}

func (d *Device) UploadFloat32(mesh gfx.MeshRole, buffer int, data []float32) {
	d.upload(mesh, buffer, len(data)*4, dataPtr(data))
}

func (d *Device) UploadFloat64(mesh gfx.MeshRole, buffer int, data []float64) {
	d.upload(mesh, buffer, len(data)*8, dataPtr(data))
}

func (d *Device) UploadUint32(mesh gfx.MeshRole, buffer int, data []uint32) {
	d.upload(mesh, buffer, len(data)*4, dataPtr(data))
}

func dataPtr[T any](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// upload respecifies the whole buffer so the previous frame's storage can
// be orphaned by the driver.
func (d *Device) upload(mesh gfx.MeshRole, buffer, size int, ptr unsafe.Pointer) {
	usage := uint32(gl.DYNAMIC_DRAW)
	if mesh == gfx.MeshPoints {
		usage = gl.STREAM_DRAW
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.meshes[mesh].vbos[buffer])
	gl.BufferData(gl.ARRAY_BUFFER, size, ptr, usage)
}

func (d *Device) SetAttributeEnabled(mesh gfx.MeshRole, location uint32, enabled bool) {
	gl.BindVertexArray(d.meshes[mesh].vao)
	if enabled {
		gl.EnableVertexAttribArray(location)
	} else {
		gl.DisableVertexAttribArray(location)
	}
	gl.BindVertexArray(0)
}

func (d *Device) uniformLocation(program gfx.ProgramRole, name string) int32 {
	key := uniformKey{program: program, name: name}
	if loc, ok := d.uniforms[key]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(d.programs[program], gl.Str(name+"\x00"))
	if loc < 0 {
		d.log.Debug("uniform not active", "program", program, "name", name)
	}
	d.uniforms[key] = loc
	return loc
}

func (d *Device) Uniform(program gfx.ProgramRole, name string, values ...float32) {
	gl.UseProgram(d.programs[program])
	loc := d.uniformLocation(program, name)
	switch len(values) {
	case 1:
		gl.Uniform1f(loc, values[0])
	case 2:
		gl.Uniform2f(loc, values[0], values[1])
	case 3:
		gl.Uniform3f(loc, values[0], values[1], values[2])
	case 4:
		gl.Uniform4f(loc, values[0], values[1], values[2], values[3])
	default:
		d.log.Warn("unsupported uniform size", "name", name, "size", len(values))
	}
}

func (d *Device) UniformInt(program gfx.ProgramRole, name string, value int32) {
	gl.UseProgram(d.programs[program])
	gl.Uniform1i(d.uniformLocation(program, name), value)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(color gfx.RGB) {
	c := color.Floats()
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) PointSize(pixels float32) {
	gl.PointSize(pixels)
}

var primitives = [...]uint32{
	gfx.Points:    gl.POINTS,
	gfx.Lines:     gl.LINES,
	gfx.LineStrip: gl.LINE_STRIP,
	gfx.Triangles: gl.TRIANGLES,
}

func (d *Device) Draw(call gfx.DrawCall) {
	gl.UseProgram(d.programs[call.Program])
	gl.BindVertexArray(d.meshes[call.Mesh].vao)
	if call.Texture != gfx.TextureNone {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, d.textures[call.Texture])
	}
	if call.Count > 0 {
		gl.DrawArrays(primitives[call.Primitive], int32(call.First), int32(call.Count))
	}
	gl.BindVertexArray(0)
}

func (d *Device) Release() {
	for i := range d.meshes {
		state := &d.meshes[i]
		if len(state.vbos) > 0 {
			gl.DeleteBuffers(int32(len(state.vbos)), &state.vbos[0])
		}
		if state.vao != 0 {
			gl.DeleteVertexArrays(1, &state.vao)
		}
		*state = meshState{}
	}
	for i, texture := range d.textures {
		if texture != 0 {
			gl.DeleteTextures(1, &texture)
			d.textures[i] = 0
		}
	}
	for i, program := range d.programs {
		if program != 0 {
			gl.DeleteProgram(program)
			d.programs[i] = 0
		}
	}
	d.uniforms = nil
}
