package gfx

import "github.com/kjkrol/gokplot/internal/platform"

type Event interface{}

// Expose asks for the current frame to be presented again.
type Expose struct{}
type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}

// FramebufferResize reports the new drawable size in pixels.
type FramebufferResize struct {
	Width, Height int
}

// DestroyNotify is a close request from the window layer.
type DestroyNotify struct{}
type UnexpectedEvent struct{}

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Label: e.Label}
	case platform.KeyRelease:
		return KeyRelease{Code: e.Code, Label: e.Label}
	case platform.FramebufferResize:
		return FramebufferResize{Width: e.Width, Height: e.Height}
	case platform.Expose:
		return Expose{}
	case platform.DestroyNotify:
		return DestroyNotify{}
	default:
		return UnexpectedEvent{}
	}
}
