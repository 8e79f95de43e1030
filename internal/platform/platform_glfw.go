//go:build !js && cgo

package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindowWrapper struct {
	window *glfw.Window
	queue  []Event
}

// NewPlatformWindowWrapper creates a hidden GLFW window with a current
// OpenGL 3.3 core context. The calling goroutine stays locked to its OS
// thread until Close.
func NewPlatformWindowWrapper(conf WindowConfig) (PlatformWindowWrapper, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()

	w := &glfwWindowWrapper{window: window}
	window.SetCloseCallback(func(*glfw.Window) {
		w.push(DestroyNotify{})
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(FramebufferResize{Width: width, Height: height})
	})
	window.SetRefreshCallback(func(*glfw.Window) {
		w.push(Expose{})
	})
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		label := keyLabel(key, scancode)
		switch action {
		case glfw.Press:
			w.push(KeyPress{Code: uint64(key), Label: label})
		case glfw.Release:
			w.push(KeyRelease{Code: uint64(key), Label: label})
		}
	})
	return w, nil
}

func (w *glfwWindowWrapper) push(event Event) {
	w.queue = append(w.queue, event)
}

func (w *glfwWindowWrapper) Show() {
	w.window.Show()
}

func (w *glfwWindowWrapper) Close() {
	w.window.Destroy()
	glfw.Terminate()
	w.queue = nil
	runtime.UnlockOSThread()
}

func (w *glfwWindowWrapper) NextEventTimeout(timeoutMs int) Event {
	if len(w.queue) == 0 {
		switch {
		case timeoutMs < 0:
			glfw.WaitEvents()
		case timeoutMs == 0:
			glfw.PollEvents()
		default:
			glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
		}
	}
	if len(w.queue) == 0 {
		return TimeoutEvent{}
	}
	event := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return event
}

func (w *glfwWindowWrapper) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindowWrapper) SwapBuffers() {
	w.window.SwapBuffers()
}

func keyLabel(key glfw.Key, scancode int) string {
	switch key {
	case glfw.KeyEscape:
		return "Escape"
	case glfw.KeySpace:
		return "Space"
	case glfw.KeyEnter:
		return "Enter"
	}
	if name := glfw.GetKeyName(key, scancode); name != "" {
		return strings.ToUpper(name)
	}
	return fmt.Sprintf("Key%d", int(key))
}
