package platform

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// PlatformWindowWrapper owns a native window together with its GL context.
// All methods must be called from the thread that created the window.
type PlatformWindowWrapper interface {
	Show()
	Close()
	// NextEventTimeout returns the next queued event. A negative timeout
	// blocks until the window layer reports activity, zero only polls.
	// TimeoutEvent is returned when nothing was queued.
	NextEventTimeout(timeoutMs int) Event
	FramebufferSize() (int, int)
	SwapBuffers()
}
