package plot

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/kjkrol/gokplot/internal/platform"
	"github.com/kjkrol/gokplot/pkg/gfx"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeWrapper delivers pending events immediately. Each batch in later
// becomes pending when a wait finds nothing to deliver; timed waits with
// nothing scripted advance the clock by the timeout instead.
type fakeWrapper struct {
	clock   *fakeClock
	width   int
	height  int
	pending []platform.Event
	later   [][]platform.Event

	shown, closed bool
	swaps         int
	blockingWaits int
	timedWaits    int
	starved       bool
}

func newFakeWrapper(clock *fakeClock, width, height int) *fakeWrapper {
	return &fakeWrapper{clock: clock, width: width, height: height}
}

func (w *fakeWrapper) Show()                       { w.shown = true }
func (w *fakeWrapper) Close()                      { w.closed = true }
func (w *fakeWrapper) SwapBuffers()                { w.swaps++ }
func (w *fakeWrapper) FramebufferSize() (int, int) { return w.width, w.height }

func (w *fakeWrapper) NextEventTimeout(timeoutMs int) platform.Event {
	if timeoutMs < 0 {
		w.blockingWaits++
	} else if timeoutMs > 0 {
		w.timedWaits++
	}
	if len(w.pending) == 0 && timeoutMs != 0 && len(w.later) > 0 {
		w.pending, w.later = w.later[0], w.later[1:]
	}
	if len(w.pending) > 0 {
		event := w.pending[0]
		w.pending = w.pending[1:]
		return event
	}
	switch {
	case timeoutMs > 0:
		w.clock.Advance(time.Duration(timeoutMs) * time.Millisecond)
	case timeoutMs < 0:
		// a real window would block forever; end the test run instead
		w.starved = true
		return platform.DestroyNotify{}
	}
	return platform.TimeoutEvent{}
}

func (w *fakeWrapper) queue(events ...platform.Event) {
	w.pending = append(w.pending, events...)
}

func (w *fakeWrapper) queueLater(events ...platform.Event) {
	w.later = append(w.later, events)
}

func keyPress(label string) platform.KeyPress {
	return platform.KeyPress{Label: label}
}

type fakeDevice struct {
	failProgram gfx.ProgramRole
	failMesh    gfx.MeshRole

	programs   map[gfx.ProgramRole]string
	meshes     map[gfx.MeshRole]gfx.MeshLayout
	textures   map[gfx.TextureRole]image.Point
	uploads    map[gfx.MeshRole]int
	submits    int
	float64s   map[gfx.MeshRole][][]float64
	uint32s    map[gfx.MeshRole][]uint32
	float32s   map[gfx.MeshRole][]float32
	attributes map[uint32]bool
	uniforms   map[string][]float32
	ints       map[string]int32
	draws      []gfx.DrawCall
	pointSizes []float32
	viewport   image.Point
	clear      gfx.RGB
	released   bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		failProgram: -1,
		failMesh:    -1,
		programs:    make(map[gfx.ProgramRole]string),
		meshes:      make(map[gfx.MeshRole]gfx.MeshLayout),
		textures:    make(map[gfx.TextureRole]image.Point),
		uploads:     make(map[gfx.MeshRole]int),
		float64s:    make(map[gfx.MeshRole][][]float64),
		uint32s:     make(map[gfx.MeshRole][]uint32),
		float32s:    make(map[gfx.MeshRole][]float32),
		attributes:  make(map[uint32]bool),
		uniforms:    make(map[string][]float32),
		ints:        make(map[string]int32),
	}
}

var errFakeCompile = errors.New("fake compile failure")

func (d *fakeDevice) CreateProgram(role gfx.ProgramRole, vs, fs string) error {
	if role == d.failProgram {
		return errFakeCompile
	}
	d.programs[role] = vs + "|" + fs
	return nil
}

func (d *fakeDevice) CreateMesh(role gfx.MeshRole, layout gfx.MeshLayout) error {
	if role == d.failMesh {
		return errors.New("fake mesh failure")
	}
	d.meshes[role] = layout
	return nil
}

func (d *fakeDevice) CreateTexture(role gfx.TextureRole, img *image.RGBA) error {
	d.textures[role] = img.Bounds().Size()
	return nil
}

func (d *fakeDevice) UploadFloat32(mesh gfx.MeshRole, _ int, data []float32) {
	d.uploads[mesh]++
	d.float32s[mesh] = append([]float32(nil), data...)
}

func (d *fakeDevice) UploadFloat64(mesh gfx.MeshRole, buffer int, data []float64) {
	d.uploads[mesh]++
	if mesh == gfx.MeshPoints && buffer == pointBufferX {
		d.submits++
	}
	for len(d.float64s[mesh]) <= buffer {
		d.float64s[mesh] = append(d.float64s[mesh], nil)
	}
	d.float64s[mesh][buffer] = append([]float64(nil), data...)
}

func (d *fakeDevice) UploadUint32(mesh gfx.MeshRole, _ int, data []uint32) {
	d.uploads[mesh]++
	d.uint32s[mesh] = append([]uint32(nil), data...)
}

func (d *fakeDevice) SetAttributeEnabled(_ gfx.MeshRole, location uint32, enabled bool) {
	d.attributes[location] = enabled
}

func uniformKey(program gfx.ProgramRole, name string) string {
	return fmt.Sprintf("%s/%s", program, name)
}

func (d *fakeDevice) Uniform(program gfx.ProgramRole, name string, values ...float32) {
	d.uniforms[uniformKey(program, name)] = append([]float32(nil), values...)
}

func (d *fakeDevice) UniformInt(program gfx.ProgramRole, name string, value int32) {
	d.ints[uniformKey(program, name)] = value
}

func (d *fakeDevice) Viewport(width, height int) { d.viewport = image.Pt(width, height) }
func (d *fakeDevice) Clear(color gfx.RGB)        { d.clear = color }
func (d *fakeDevice) PointSize(pixels float32)   { d.pointSizes = append(d.pointSizes, pixels) }
func (d *fakeDevice) Draw(call gfx.DrawCall)     { d.draws = append(d.draws, call) }
func (d *fakeDevice) Release()                   { d.released = true }

// lastDraw returns the most recent draw of mesh.
func (d *fakeDevice) lastDraw(mesh gfx.MeshRole) (gfx.DrawCall, bool) {
	for i := len(d.draws) - 1; i >= 0; i-- {
		if d.draws[i].Mesh == mesh {
			return d.draws[i], true
		}
	}
	return gfx.DrawCall{}, false
}

func (d *fakeDevice) drawCount(mesh gfx.MeshRole) int {
	n := 0
	for _, call := range d.draws {
		if call.Mesh == mesh {
			n++
		}
	}
	return n
}

var fakeImageSize = image.Pt(64, 32)

type fakeLoader struct {
	missing string
}

func (l fakeLoader) Shader(name string) (string, error) {
	if name == l.missing {
		return "", fmt.Errorf("%s: not found", name)
	}
	return "source of " + name, nil
}

func (l fakeLoader) Image(name string) (*image.RGBA, error) {
	if name == l.missing {
		return nil, fmt.Errorf("%s: not found", name)
	}
	return image.NewRGBA(image.Rectangle{Max: fakeImageSize}), nil
}

type harness struct {
	plot    *Plot
	clock   *fakeClock
	wrapper *fakeWrapper
	device  *fakeDevice
}

func newHarness() (*harness, error) {
	h := &harness{clock: newFakeClock(), device: newFakeDevice()}
	h.wrapper = newFakeWrapper(h.clock, 800, 600)
	p, err := newPlot(DefaultConfig("test"), h.backend, fakeLoader{}, h.clock)
	h.plot = p
	return h, err
}

func (h *harness) backend(gfx.WindowConfig) (platform.PlatformWindowWrapper, gfx.Device, error) {
	return h.wrapper, h.device, nil
}
