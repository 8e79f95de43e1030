package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/kjkrol/gokplot/pkg/gfx"
)

const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultResourceRoot = "/usr/local/share/gokplot"
	DefaultFramerate    = 60

	DefaultPointColor gfx.RGB = 0xffff33
	DefaultBGColor    gfx.RGB = 0x000000
	DefaultGridColor  gfx.RGB = 0x808080
)

var ErrInvalidBounds = errors.New("plot: invalid bounds")

type Config struct {
	Title  string
	Width  int
	Height int
	// ResourceRoot is searched for shaders and images before the current
	// working directory.
	ResourceRoot string
	Keys         KeyMap
	// GridColor is used by axes whose spacing follows the bounds.
	GridColor gfx.RGB
}

func DefaultConfig(title string) Config {
	return Config{
		Title:        title,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		ResourceRoot: DefaultResourceRoot,
		Keys:         DefaultKeyMap(),
		GridColor:    DefaultGridColor,
	}
}

func (c Config) normalize() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Keys == nil {
		c.Keys = DefaultKeyMap()
	}
	return c
}

func (c Config) Window() gfx.WindowConfig {
	return gfx.WindowConfig{Width: c.Width, Height: c.Height, Title: c.Title}
}

// Bounds is the visible data rectangle.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) Validate() error {
	for _, v := range []float64{b.XMin, b.XMax, b.YMin, b.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidBounds, b)
		}
		// bounds reach the shaders as float32
		if math.Abs(v) > math.MaxFloat32 {
			return fmt.Errorf("%w: %g outside float32 range", ErrInvalidBounds, v)
		}
	}
	if b.XMin >= b.XMax {
		return fmt.Errorf("%w: xMin %g >= xMax %g", ErrInvalidBounds, b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("%w: yMin %g >= yMax %g", ErrInvalidBounds, b.YMin, b.YMax)
	}
	if math.IsInf(float32Span(b.XMin, b.XMax), 0) || math.IsInf(float32Span(b.YMin, b.YMax), 0) {
		return fmt.Errorf("%w: span of %+v overflows", ErrInvalidBounds, b)
	}
	return nil
}

// float32Span is max-min as the shaders compute it.
func float32Span(min, max float64) float64 {
	return float64(float32(max) - float32(min))
}
