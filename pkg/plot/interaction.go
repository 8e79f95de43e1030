package plot

import "github.com/kjkrol/gokplot/pkg/gfx"

type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionFreeze
	ActionOverlay
	ActionGrid
)

// KeyMap binds key labels, as reported by the window layer, to actions.
type KeyMap map[string]Action

func DefaultKeyMap() KeyMap {
	return KeyMap{
		"Escape": ActionQuit,
		"Q":      ActionQuit,
		"P":      ActionPause,
		"F":      ActionFreeze,
		"H":      ActionOverlay,
		"G":      ActionGrid,
	}
}

// Flags are the four independent interaction toggles plus the terminal
// close request.
type Flags struct {
	Paused  bool
	Frozen  bool
	Overlay bool
	Grid    bool
	Closing bool
}

// Effect is what the engine must do after a transition.
type Effect struct {
	Redraw  bool
	Resized bool
	Width   int
	Height  int
}

// Step applies one event to the flags. It touches no window or GPU state.
func Step(flags Flags, event gfx.Event, keys KeyMap) (Flags, Effect) {
	var effect Effect
	switch e := event.(type) {
	case gfx.KeyPress:
		switch keys[e.Label] {
		case ActionQuit:
			flags.Closing = true
		case ActionPause:
			flags.Paused = !flags.Paused
		case ActionFreeze:
			flags.Frozen = !flags.Frozen
		case ActionOverlay:
			flags.Overlay = !flags.Overlay
			effect.Redraw = true
		case ActionGrid:
			flags.Grid = !flags.Grid
			effect.Redraw = true
		}
	case gfx.DestroyNotify:
		flags.Closing = true
	case gfx.FramebufferResize:
		effect.Resized = true
		effect.Width, effect.Height = e.Width, e.Height
		effect.Redraw = flags.Paused
	case gfx.Expose:
		effect.Redraw = flags.Paused
	}
	if flags.Closing {
		effect.Redraw = false
	}
	return flags, effect
}
