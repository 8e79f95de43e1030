// Package plot is a real-time 2-D point plotter driven by a caller-owned
// computation loop.
//
// A Plot is owned by the goroutine that created it, which must stay on the
// thread holding the graphics context. Update variants gate GPU work on a
// frame pacer and process window input; the returned Status tells the
// caller whether the frame was drawn, skipped, frozen or the window closed.
package plot

import (
	"fmt"
	"image"
	"math"

	"github.com/kjkrol/gokplot/internal/platform"
	"github.com/kjkrol/gokplot/pkg/gfx"
	"github.com/kjkrol/gokplot/pkg/grid"
)

type Status int

const (
	// StatusClosed means the window was closed; the caller should Delete the plot.
	StatusClosed Status = iota
	StatusOK
	// StatusNotReady means the frame interval has not elapsed; nothing was drawn.
	StatusNotReady
	// StatusFrozen means input froze the display; the data was not uploaded.
	StatusFrozen
)

func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusOK:
		return "ok"
	case StatusNotReady:
		return "not ready"
	case StatusFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Backend opens the native window, makes its GL context current and
// returns the device bound to it.
type Backend func(conf gfx.WindowConfig) (platform.PlatformWindowWrapper, gfx.Device, error)

type Plot struct {
	window *gfx.Window
	device gfx.Device
	pacer  *Pacer
	points *pointPipeline
	grids  [2]axisGrid
	atlas  *grid.Atlas
	keys   KeyMap
	flags  Flags
	bounds Bounds
	bg     gfx.RGB
}

type pacing int

const (
	pacingImmediate pacing = iota
	pacingIfReady
	pacingWait
)

// New opens a window through backend, loads every program and texture and
// installs the defaults: bounds [-1,1]x[-1,1], 60 fps cap, yellow points
// on black, unconnected, auto grid on both axes. On failure everything
// created so far is released.
func New(conf Config, backend Backend, loader ResourceLoader) (*Plot, error) {
	return newPlot(conf, backend, loader, systemClock{})
}

func newPlot(conf Config, backend Backend, loader ResourceLoader, clock Clock) (*Plot, error) {
	conf = conf.normalize()
	wrapper, device, err := backend(conf.Window())
	if err != nil {
		return nil, fmt.Errorf("plot: open window: %w", err)
	}
	p := &Plot{
		window: gfx.NewWindow(wrapper, gfx.DrainAll()),
		device: device,
		pacer:  NewPacer(clock),
		points: newPointPipeline(device),
		keys:   conf.Keys,
		grids: [2]axisGrid{
			newAxisGrid(grid.AxisX, conf.GridColor),
			newAxisGrid(grid.AxisY, conf.GridColor),
		},
	}
	if err := p.loadResources(loader); err != nil {
		Logger().Warn("plot init failed, releasing resources", "err", err)
		p.Delete()
		return nil, fmt.Errorf("plot: %w", err)
	}

	p.resize(p.window.Size())
	p.SetPointColor(DefaultPointColor)
	p.SetBGColor(DefaultBGColor)
	p.SetPointAlpha(1)
	if err := p.SetBounds(-1, 1, -1, 1); err != nil {
		p.Delete()
		return nil, err
	}
	p.window.Show()
	Logger().Info("plot created", "title", conf.Title, "width", conf.Width, "height", conf.Height)
	return p, nil
}

// Delete releases every GPU object and destroys the window. The plot must
// not be used afterwards.
func (p *Plot) Delete() {
	if p.device == nil {
		return
	}
	p.device.Release()
	p.window.Close()
	p.device = nil
	p.window = nil
	p.points = nil
	Logger().Info("plot deleted")
}

// Update uploads the points and redraws immediately, ignoring the frame
// rate cap. A nil colors slice draws every point in the default color.
func (p *Plot) Update(x, y []float64, colors []uint32) Status {
	return p.present(pacingImmediate, x, y, colors)
}

// UpdateIfReady behaves like Update once a frame interval has passed since
// the last redraw and returns StatusNotReady without GPU work otherwise.
func (p *Plot) UpdateIfReady(x, y []float64, colors []uint32) Status {
	return p.present(pacingIfReady, x, y, colors)
}

// UpdateWait waits out the rest of the frame interval, handling input
// meanwhile, then behaves like Update.
func (p *Plot) UpdateWait(x, y []float64, colors []uint32) Status {
	return p.present(pacingWait, x, y, colors)
}

// Redraw repaints with the last submitted data, ignoring the frame rate cap.
func (p *Plot) Redraw() {
	if p.flags.Closing {
		return
	}
	p.draw()
	p.pacer.Mark()
}

// Close requests teardown as a window close would. The next update
// returns StatusClosed.
func (p *Plot) Close() {
	p.flags.Closing = true
}

func (p *Plot) Flags() Flags {
	return p.flags
}

func (p *Plot) Bounds() Bounds {
	return p.bounds
}

// GridSpec returns an axis's current spacing and whether it follows the bounds.
func (p *Plot) GridSpec(axis grid.Axis) (spec grid.Spec, auto bool) {
	g := p.grids[axis]
	return g.spec, g.auto
}

func (p *Plot) present(mode pacing, x, y []float64, colors []uint32) Status {
	p.window.Poll(p.handleEvent)
	for {
		p.waitWhilePaused()
		if p.flags.Closing {
			return StatusClosed
		}
		if mode == pacingIfReady && !p.pacer.Ready() {
			return StatusNotReady
		}
		if mode == pacingWait {
			p.waitFrame()
			if p.flags.Paused {
				continue
			}
			if p.flags.Closing {
				return StatusClosed
			}
		}
		break
	}
	if p.flags.Frozen {
		return StatusFrozen
	}
	p.points.submit(x, y, colors)
	p.draw()
	p.pacer.Mark()
	return StatusOK
}

// waitWhilePaused blocks on window events until unpaused or closing.
func (p *Plot) waitWhilePaused() {
	for p.flags.Paused && !p.flags.Closing {
		p.window.Wait(gfx.WaitForever, p.handleEvent)
	}
}

// waitFrame handles events until the pacer is ready. It returns early on
// pause or close so the caller can re-check.
func (p *Plot) waitFrame() {
	for !p.flags.Paused && !p.flags.Closing {
		remaining := p.pacer.Remaining()
		if remaining <= 0 {
			return
		}
		p.window.Wait(remaining, p.handleEvent)
	}
}

func (p *Plot) handleEvent(event gfx.Event) {
	flags, effect := Step(p.flags, event, p.keys)
	if flags != p.flags {
		Logger().Debug("interaction", "flags", flags)
	}
	p.flags = flags
	if effect.Resized {
		p.resize(effect.Width, effect.Height)
	}
	if effect.Redraw {
		p.draw()
	}
}

func (p *Plot) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.device.Viewport(width, height)
	p.device.Uniform(gfx.ProgramLabels, "uPixDims", float32(width), float32(height))
	p.device.Uniform(gfx.ProgramOverlay, "uPixDims", float32(width), float32(height))
}

// draw runs one full pass: clear, gridlines, points, labels, overlay,
// then presents the frame.
func (p *Plot) draw() {
	p.device.Clear(p.bg)
	if p.flags.Grid {
		for i := range p.grids {
			p.grids[i].drawLines(p.device)
		}
	}
	p.points.draw()
	if p.flags.Grid {
		for i := range p.grids {
			p.grids[i].drawLabels(p.device)
		}
	}
	if p.flags.Overlay {
		p.device.Draw(gfx.DrawCall{
			Program:   gfx.ProgramOverlay,
			Mesh:      gfx.MeshOverlay,
			Texture:   gfx.TextureOverlay,
			Primitive: gfx.Triangles,
			Count:     len(overlayQuad) / 2,
		})
	}
	p.window.Present()
}

// SetBounds sets the visible data rectangle and regenerates both grids.
// Axes in auto grid mode also get a fresh spacing derived from the bounds.
func (p *Plot) SetBounds(xMin, xMax, yMin, yMax float64) error {
	b := Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := b.Validate(); err != nil {
		return err
	}
	p.bounds = b
	p.device.Uniform(gfx.ProgramPoints, "uBounds", float32(xMin), float32(xMax), float32(yMin), float32(yMax))
	for i := range p.grids {
		g := &p.grids[i]
		lo, hi := p.axisRange(g.axis)
		if g.auto {
			g.spec = grid.AutoSpec(lo, hi, g.spec.Color)
		}
		g.rebuild(p.device, lo, hi, p.atlas.Cell)
	}
	return nil
}

// SetGridX places x gridlines interval apart with one at anchor and stops
// the x axis from following the bounds. A non-positive interval is ignored.
// Setting a grid also makes the grid visible.
func (p *Plot) SetGridX(anchor, interval float64, rgb gfx.RGB) {
	p.setGrid(grid.AxisX, grid.Spec{Anchor: anchor, Interval: interval, Color: rgb})
}

// SetGridY is SetGridX for the y axis.
func (p *Plot) SetGridY(anchor, interval float64, rgb gfx.RGB) {
	p.setGrid(grid.AxisY, grid.Spec{Anchor: anchor, Interval: interval, Color: rgb})
}

func (p *Plot) setGrid(axis grid.Axis, spec grid.Spec) {
	if !spec.Valid() {
		return
	}
	g := &p.grids[axis]
	g.spec = spec
	g.auto = false
	lo, hi := p.axisRange(axis)
	g.rebuild(p.device, lo, hi, p.atlas.Cell)
	p.flags.Grid = true
}

func (p *Plot) axisRange(axis grid.Axis) (float64, float64) {
	if axis == grid.AxisX {
		return p.bounds.XMin, p.bounds.XMax
	}
	return p.bounds.YMin, p.bounds.YMax
}

// SetPointColor sets the color used when an update passes no colors.
func (p *Plot) SetPointColor(rgb gfx.RGB) {
	c := rgb.Floats()
	p.device.Uniform(gfx.ProgramPoints, "uDefaultColor", c[0], c[1], c[2])
}

func (p *Plot) SetBGColor(rgb gfx.RGB) {
	p.bg = rgb
}

// SetPointSize sets the point width in pixels. Connected plots ignore it.
func (p *Plot) SetPointSize(pixels float64) {
	if pixels <= 0 || math.IsNaN(pixels) {
		return
	}
	p.points.size = float32(pixels)
}

// SetPointAlpha sets point opacity, clamped to [0, 1].
func (p *Plot) SetPointAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		return
	}
	alpha = math.Max(0, math.Min(1, alpha))
	p.device.Uniform(gfx.ProgramPoints, "uAlpha", float32(alpha))
}

// SetConnected switches between a scatter plot and a line strip through
// the points in the order given.
func (p *Plot) SetConnected(connected bool) {
	p.points.connected = connected
}

// SetFramerate caps UpdateIfReady and UpdateWait at fps; fps <= 0 uncaps them.
func (p *Plot) SetFramerate(fps float64) {
	p.pacer.SetFramerate(fps)
}

// Size returns the framebuffer size in pixels.
func (p *Plot) Size() image.Point {
	w, h := p.window.Size()
	return image.Pt(w, h)
}
