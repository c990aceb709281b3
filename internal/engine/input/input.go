// Package input turns SDL2 events into per-frame key, mouse and window state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one SDL event reduced to the fields the demos read.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	// Wheel is the vertical scroll amount; positive scrolls away from the user.
	Wheel float32
}

// Input holds the state gathered by the last Update.
type Input struct {
	events []Event
	keys   []uint8

	// Mouse motion accumulated over the last Update. In relative mouse
	// mode these are raw deltas; otherwise they follow the cursor.
	dx, dy int32
	wheel  float32
}

// New returns an Input with no keys held.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains the SDL queue and reports whether a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dx, i.dy, i.wheel = 0, 0, 0

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Held keys are read from the keyboard state, not repeats.
			if e.Repeat != 0 {
				continue
			}
			t := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				t = EventKeyDown
			}
			i.events = append(i.events, Event{Type: t, Key: e.Keysym.Scancode})

		case *sdl.MouseMotionEvent:
			i.dx += e.XRel
			i.dy += e.YRel
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == uint32(sdl.MOUSEWHEEL_FLIPPED) {
				y = -y
			}
			i.wheel += y
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: y})

		case *sdl.MouseButtonEvent:
			t := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				t = EventMouseDown
			}
			i.events = append(i.events, Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})
		}
	}

	// The returned slice is owned by SDL and stays valid for the program's lifetime.
	i.keys = sdl.GetKeyboardState()
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports a key-down edge for scancode in the last Update.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether scancode is held as of the last Update.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// MouseDelta returns the mouse motion since the previous Update, with y
// pointing up.
func (i *Input) MouseDelta() (dx, dy float32) {
	return float32(i.dx), float32(-i.dy)
}

// Wheel returns the vertical scroll since the previous Update.
func (i *Input) Wheel() float32 {
	return i.wheel
}
