package platform

type Event interface{}

type Expose struct{}
type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type FramebufferResize struct {
	Width, Height int
}
type DestroyNotify struct{}
type UnexpectedEvent struct{}
type TimeoutEvent struct{}
