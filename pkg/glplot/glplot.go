//go:build !js && cgo

// Package glplot opens plots on a GLFW window with an OpenGL 3.3 core
// context.
//
// GLFW and OpenGL calls must come from the main thread, so programs using
// this package lock it in an init function:
//
//	func init() { runtime.LockOSThread() }
package glplot

import (
	"fmt"

	"github.com/kjkrol/gokplot/internal/assets"
	"github.com/kjkrol/gokplot/internal/platform"
	"github.com/kjkrol/gokplot/internal/renderer"
	"github.com/kjkrol/gokplot/pkg/gfx"
	"github.com/kjkrol/gokplot/pkg/plot"
)

// Init opens an 800x600 plot titled title with the default configuration.
func Init(title string) (*plot.Plot, error) {
	return New(plot.DefaultConfig(title))
}

// New opens a plot with conf. Shaders and images are looked up under
// conf.ResourceRoot, then the working directory, then the copies built
// into the binary.
func New(conf plot.Config) (*plot.Plot, error) {
	loader := assets.NewLoader(conf.ResourceRoot, plot.Logger())
	return plot.New(conf, Backend, loader)
}

// Backend is the plot.Backend for GLFW windows and go-gl devices.
func Backend(conf gfx.WindowConfig) (platform.PlatformWindowWrapper, gfx.Device, error) {
	wrapper, err := platform.NewPlatformWindowWrapper(conf.Convert())
	if err != nil {
		return nil, nil, err
	}
	device, err := renderer.NewDevice(plot.Logger().With("component", "gl"))
	if err != nil {
		wrapper.Close()
		return nil, nil, fmt.Errorf("graphics device: %w", err)
	}
	return wrapper, device, nil
}
