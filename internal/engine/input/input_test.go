package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestIsKeyPressed(t *testing.T) {
	i := New()
	i.events = append(i.events,
		Event{Type: EventKeyUp, Key: sdl.SCANCODE_W},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
	)

	if !i.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("expected F12 pressed")
	}
	if i.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("key-up must not count as pressed")
	}
}

func TestIsKeyDown(t *testing.T) {
	i := New()
	if i.IsKeyDown(sdl.SCANCODE_A) {
		t.Error("no keyboard state yet, expected false")
	}

	i.keys = make([]uint8, sdl.SCANCODE_D+1)
	i.keys[sdl.SCANCODE_D] = 1
	tests := []struct {
		key  sdl.Scancode
		want bool
	}{
		{sdl.SCANCODE_D, true},
		{sdl.SCANCODE_A, false},
		{sdl.SCANCODE_F12, false}, // past the end of the state slice
	}
	for _, tt := range tests {
		if got := i.IsKeyDown(tt.key); got != tt.want {
			t.Errorf("IsKeyDown(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMouseDeltaPointsUp(t *testing.T) {
	i := New()
	i.dx, i.dy, i.wheel = 3, 5, -1

	dx, dy := i.MouseDelta()
	if dx != 3 || dy != -5 {
		t.Errorf("MouseDelta = (%v, %v), want (3, -5)", dx, dy)
	}
	if i.Wheel() != -1 {
		t.Errorf("Wheel = %v, want -1", i.Wheel())
	}
}
