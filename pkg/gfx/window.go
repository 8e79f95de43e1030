package gfx

import (
	"time"

	"github.com/kjkrol/gokplot/internal/platform"
)

// WaitForever makes Window.Wait block until the window layer reports activity.
const WaitForever time.Duration = -1

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

func (w WindowConfig) Convert() platform.WindowConfig {
	return platform.WindowConfig{Width: w.Width, Height: w.Height, Title: w.Title}
}

// Window drains platform events into explicit Event values and tracks the
// framebuffer size seen through them.
type Window struct {
	platformWinWrapper platform.PlatformWindowWrapper
	strategy           EventsConsumerStrategy
	width              int
	height             int
}

func NewWindow(wrapper platform.PlatformWindowWrapper, strategy EventsConsumerStrategy) *Window {
	if wrapper == nil {
		panic("platform window wrapper is required")
	}
	if strategy == nil {
		strategy = DrainAll()
	}
	width, height := wrapper.FramebufferSize()
	return &Window{
		platformWinWrapper: wrapper,
		strategy:           strategy,
		width:              width,
		height:             height,
	}
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) Show() {
	w.platformWinWrapper.Show()
}

func (w *Window) Present() {
	w.platformWinWrapper.SwapBuffers()
}

func (w *Window) Close() {
	w.platformWinWrapper.Close()
}

// Poll handles every event already pending without blocking.
func (w *Window) Poll(handle func(Event)) int {
	return w.strategy.Consume(w.poll, w.track(handle), 0)
}

// Wait blocks up to timeout for the first event, then drains the rest.
// A negative timeout waits indefinitely.
func (w *Window) Wait(timeout time.Duration, handle func(Event)) int {
	return w.strategy.Consume(w.poll, w.track(handle), timeoutMillis(timeout))
}

func (w *Window) poll(timeoutMs int) (Event, bool) {
	platformEvent := w.platformWinWrapper.NextEventTimeout(timeoutMs)
	if _, ok := platformEvent.(platform.TimeoutEvent); ok {
		return nil, false
	}
	return convert(platformEvent), true
}

func (w *Window) track(handle func(Event)) func(Event) {
	return func(event Event) {
		if resize, ok := event.(FramebufferResize); ok {
			w.width, w.height = resize.Width, resize.Height
		}
		handle(event)
	}
}

func timeoutMillis(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	timeoutMs := int(timeout / time.Millisecond)
	if timeout > 0 && timeoutMs == 0 {
		timeoutMs = 1
	}
	return timeoutMs
}
